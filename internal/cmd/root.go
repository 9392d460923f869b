// Package cmd provides the CLI commands for capstan.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/capstan/internal/ui"
)

const version = "0.1.0"

var (
	composeFiles []string
	projectName  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "capstan",
	Short: "Resolve, validate and merge compose files",
	Long: `capstan - compose files, resolved

Loads one or more compose files, substitutes ${VARIABLE} references from the
environment, validates every file and merges them in order into a single
canonical document.

FILES
  -f, --file FILE       Compose file to load (repeatable, merged in order)
                        Defaults to $COMPOSE_FILE, then the nearest
                        compose.yaml / docker-compose.yml and its override
  -p, --project-name    Project name (defaults to $COMPOSE_PROJECT_NAME,
                        the file's name field, then the directory name)

COMMANDS
  convert               Print the merged document (alias: config)
    --format yaml|json  Output format
    --services          List service names
    --volumes           List volume names
    --profiles          List profiles
    --images            List images
    -q, --quiet         Validate only
    -o, --output FILE   Write to FILE instead of stdout
  update                Update capstan to the latest release
    --check             Only check for a newer release`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ui.DetectColor(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&composeFiles, "file", "f", nil, "Compose configuration files")
	rootCmd.PersistentFlags().StringVarP(&projectName, "project-name", "p", "", "Project name")

	// Version template
	rootCmd.SetVersionTemplate("capstan version {{.Version}}\n")
}
