package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/history"
	"github.com/ajenti/ajenti-dev-multitool/pkg/tui"
	"github.com/ajenti/ajenti-dev-multitool/pkg/utils"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

func newHistoryCmd() *cobra.Command {
	var builds bool

	cmd := &cobra.Command{
		Use:   "history <package>",
		Short: "Show a package's recorded history",
		Long: `Show the recorded descriptor revisions of a package, oldest first.
With --builds, the recorded artifact builds are shown instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runHistory(args[0], builds)
		},
	}

	cmd.Flags().BoolVar(&builds, "builds", false, "Show artifact builds instead of revisions")

	return cmd
}

func runHistory(name string, builds bool) error {
	root, err := findWorkspace()
	if err != nil {
		return err
	}

	pkg, err := workspace.Find(root, name)
	if err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if builds {
		return printBuilds(store, pkg)
	}
	return printRevisions(store, pkg)
}

func printRevisions(store *history.Store, pkg *workspace.Package) error {
	revs, err := store.Revisions(pkg.Dir)
	if err != nil {
		return err
	}
	if len(revs) == 0 {
		fmt.Printf("No revisions recorded for %s yet.\n", pkg.Dir)
		return nil
	}

	fmt.Printf("%s %s\n\n",
		tui.TitleStyle.Render(pkg.Descriptor.Name),
		tui.LabelStyle.Render("last change "+utils.FormatTimeAgo(revs[len(revs)-1].CreatedAt)))
	for _, rev := range revs {
		line := fmt.Sprintf("  %s  %-8s %s", rev.CreatedAt.Local().Format(time.DateTime), rev.Action, rev.Version)
		if len(rev.Requires) > 0 {
			line += tui.LabelStyle.Render("  requires: " + strings.Join(rev.Requires, ", "))
		}
		fmt.Println(line)
	}
	return nil
}

func printBuilds(store *history.Store, pkg *workspace.Package) error {
	builds, err := store.Builds(pkg.Descriptor.Name)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		fmt.Printf("No builds recorded for %s yet.\n", pkg.Descriptor.Name)
		return nil
	}

	fmt.Printf("%s\n\n", tui.TitleStyle.Render(pkg.Descriptor.Name))
	for _, b := range builds {
		fmt.Printf("  %s  %-8s %s\n", b.CreatedAt.Local().Format(time.DateTime), b.Version, b.Artifact)
		fmt.Printf("             %s\n", tui.LabelStyle.Render("id: "+b.ID+"  sha256: "+b.SHA256[:12]))
	}
	return nil
}
