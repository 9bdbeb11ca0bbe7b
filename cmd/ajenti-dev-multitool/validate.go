package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/validation"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate package descriptors",
		Long:  `Validate every package.yaml descriptor in the workspace for correctness.`,
		RunE:  runValidate,
	}
}

func runValidate(_ *cobra.Command, _ []string) error {
	root, err := findWorkspace()
	if err != nil {
		return err
	}

	result, err := validation.NewValidator(root).ValidateAll()
	if err != nil {
		return err
	}

	printIssues(result.Issues)

	if result.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount())
	}

	if len(result.Issues) == 0 {
		fmt.Println("All package descriptors are valid.")
	} else {
		fmt.Printf("\nValidation passed with %d warning(s).\n", result.WarningCount())
	}

	return nil
}

// printIssues prints validation issues in the [SEVERITY] package: message (field) shape.
func printIssues(issues []validation.Issue) {
	for _, issue := range issues {
		prefix := "WARNING"
		if issue.Severity == validation.SeverityError {
			prefix = "ERROR"
		}

		if issue.Field != "" {
			fmt.Printf("[%s] %s: %s (%s)\n", prefix, issue.Package, issue.Message, issue.Field)
		} else {
			fmt.Printf("[%s] %s: %s\n", prefix, issue.Package, issue.Message)
		}
	}
}
