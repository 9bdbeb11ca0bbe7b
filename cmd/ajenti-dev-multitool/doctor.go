package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/doctor"
	"github.com/ajenti/ajenti-dev-multitool/pkg/globalconfig"
	"github.com/ajenti/ajenti-dev-multitool/pkg/tui"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the development environment",
		Long:  `Check that the workspace, required tools and local state are in working order.`,
		RunE:  runDoctor,
	}
}

func runDoctor(_ *cobra.Command, _ []string) error {
	// Doctor must work before init, so a missing config is not fatal here
	workspacePath := workspaceFlag
	if workspacePath == "" {
		cfg, err := globalconfig.Load()
		if err == nil {
			workspacePath = cfg.WorkspacePath
		} else if !errors.Is(err, globalconfig.ErrNotInitialized) {
			return err
		}
	}

	historyPath, err := globalconfig.GetHistoryPath()
	if err != nil {
		historyPath = ""
	}

	checker := doctor.NewChecker(workspacePath, historyPath)
	checks := checker.CheckAll()

	for _, check := range checks {
		mark := tui.StatusMark(check.Status == doctor.StatusOK, check.Status == doctor.StatusWarning)
		fmt.Printf("%s %-10s %s\n", mark, check.Name, check.Message)
		if check.Status == doctor.StatusMissing && check.FixHint != "" {
			fmt.Printf("  %s\n", tui.LabelStyle.Render("fix: "+check.FixHint))
		}
	}

	summary := checker.GetSummary(checks)
	fmt.Printf("\n%d checks: %d ok, %d warnings, %d missing, %d errors\n",
		summary.Total, summary.OK, summary.Warnings, summary.Missing, summary.Errors)

	if !summary.Healthy() {
		return fmt.Errorf("environment is not healthy")
	}
	return nil
}
