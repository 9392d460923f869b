// Package ui provides colored console diagnostics.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	// Green colors success messages.
	Green = color.New(color.FgGreen)

	warningLabel = color.New(color.FgYellow, color.Bold)
	errorLabel   = color.New(color.FgRed, color.Bold)
)

var (
	mu     sync.Mutex
	stderr io.Writer = os.Stderr
)

// SetOutput redirects diagnostics and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := stderr
	stderr = w
	return prev
}

// DetectColor disables color unless f is a terminal and NO_COLOR is unset.
func DetectColor(f *os.File) {
	_, noColor := os.LookupEnv("NO_COLOR")
	color.NoColor = noColor || !term.IsTerminal(int(f.Fd()))
}

// Warning prints a bold yellow "Warning:" label followed by the message.
func Warning(format string, args ...any) {
	labeled(warningLabel, "Warning:", format, args...)
}

// Error prints a bold red "Error:" label followed by the message.
func Error(format string, args ...any) {
	labeled(errorLabel, "Error:", format, args...)
}

// Success prints a green message with a checkmark.
func Success(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	Green.Fprintf(stderr, "✓ "+format+"\n", args...)
}

func labeled(c *color.Color, label, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	c.Fprint(stderr, label)
	fmt.Fprintf(stderr, " "+format+"\n", args...)
}
