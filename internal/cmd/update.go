package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/capstan/internal/ui"
	"github.com/cameronsjo/capstan/internal/update"
)

const changelogLines = 10

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade", "selfupdate"},
	Short:   "Update capstan to the latest version",
	Long: `Update capstan to the latest version from GitHub releases.

Examples:
  capstan update           # Update to latest version
  capstan update --check   # Check for updates without installing`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

var checkOnly bool

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for updates, don't install")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Current version: %s (%s)\n", version, update.Platform())

	if checkOnly {
		release, available, err := update.Check(cmd.Context(), version)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !available {
			ui.Success("You're running the latest version")
			return nil
		}
		ui.Success("New version available: %s (released %s)", release.Version, release.PublishedAt)
		printChangelog(out, release)
		return nil
	}

	release, err := update.Apply(cmd.Context(), version)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if release == nil {
		ui.Success("You're already running the latest version")
		return nil
	}

	ui.Success("Updated to version %s", release.Version)
	printChangelog(out, release)
	return nil
}

func printChangelog(w io.Writer, release *update.Release) {
	lines := update.Excerpt(release.Changelog, changelogLines)
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, "What's new:")
	for _, line := range lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
