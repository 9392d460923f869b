package cmd

import (
	"bytes"
	"testing"

	"github.com/fatih/color"

	"github.com/cameronsjo/capstan/internal/config"
	"github.com/cameronsjo/capstan/internal/ui"
)

// resetFlags restores every flag variable to its default. Cobra parses into
// package-level variables, so values would otherwise leak between tests.
func resetFlags() {
	composeFiles = nil
	projectName = ""

	convertFormat = "yaml"
	convertQuiet = false
	convertNoInterpolate = false
	convertServices = false
	convertVolumes = false
	convertProfiles = false
	convertImages = false
	convertOutput = ""

	checkOnly = false
}

// isolateEnv clears the environment variables the CLI consults. The loader
// publishes the project name with os.Setenv; t.Setenv restores it afterwards.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.FileEnv, "")
	t.Setenv(config.ProjectNameEnv, "")
}

// executeCmd executes the root command with the given args and returns
// stdout, the diagnostics written through ui, and the error.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	oldNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = oldNoColor }()

	var diag bytes.Buffer
	prev := ui.SetOutput(&diag)
	defer ui.SetOutput(prev)

	buf := new(bytes.Buffer)
	// Important: Set args BEFORE setting output buffers
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.Execute()
	return buf.String(), diag.String(), err
}
