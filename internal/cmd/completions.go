package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/capstan/internal/compose"
)

// completeFormats completes --format values.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, f := range compose.Formats {
		if strings.HasPrefix(f, toComplete) {
			names = append(names, f)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeComposeFiles restricts --file completion to YAML files.
func completeComposeFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// registerCompletions registers all dynamic completions for commands.
func registerCompletions() {
	// Completions are optional; a repeat registration is not an error worth reporting.
	_ = rootCmd.RegisterFlagCompletionFunc("file", completeComposeFiles)
	_ = convertCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// init registers completions once every command is set up.
func init() {
	cobra.OnInitialize(registerCompletions)
}
