package ui

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput captures diagnostics written while fn runs, without color.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldNoColor := color.NoColor
	color.NoColor = true

	var buf bytes.Buffer
	prev := SetOutput(&buf)

	fn()

	SetOutput(prev)
	color.NoColor = oldNoColor
	return buf.String()
}

func TestWarning(t *testing.T) {
	output := captureOutput(t, func() {
		Warning("The %q variable is not set, defaulting to a blank string", "TAG")
	})
	assert.Equal(t, "Warning: The \"TAG\" variable is not set, defaulting to a blank string\n", output)
}

func TestError(t *testing.T) {
	output := captureOutput(t, func() {
		Error("failed with code %d: %s", 500, "internal error")
	})
	assert.Equal(t, "Error: failed with code 500: internal error\n", output)
}

func TestSuccess(t *testing.T) {
	output := captureOutput(t, func() {
		Success("wrote %s", "out.yaml")
	})
	assert.Equal(t, "✓ wrote out.yaml\n", output)
}

func TestWarning_Colored(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()
	color.NoColor = false

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	Warning("careful")

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "Warning:")
	assert.True(t, strings.HasSuffix(out, " careful\n"))
}

func TestPercentInArgs(t *testing.T) {
	output := captureOutput(t, func() {
		Warning("%s", "100% done")
	})
	assert.Equal(t, "Warning: 100% done\n", output)
}

func TestDetectColor_NotATerminal(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	color.NoColor = false
	DetectColor(f)
	assert.True(t, color.NoColor)
}

func TestDetectColor_NoColorEnv(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()

	t.Setenv("NO_COLOR", "1")
	color.NoColor = false
	DetectColor(os.Stderr)
	assert.True(t, color.NoColor)
}

func TestConcurrentOutput(t *testing.T) {
	output := captureOutput(t, func() {
		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				Warning("message %d", n)
			}(i)
		}
		wg.Wait()
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 10)
	for i := range 10 {
		assert.Contains(t, output, fmt.Sprintf("Warning: message %d\n", i))
	}
}
