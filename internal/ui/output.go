// Package ui provides colored terminal output for the CLI.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

const headerWidth = 60

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgBlue)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	stepColor    = color.New(color.FgMagenta)
)

// center pads text with leading spaces so it sits in the middle of width.
// Text wider than width is returned unchanged.
func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

// Header prints a centered section header with a rule above and below.
func Header(text string) {
	rule := strings.Repeat("=", headerWidth)
	headerColor.Fprintln(os.Stderr, rule)
	headerColor.Fprintln(os.Stderr, center(text, headerWidth))
	headerColor.Fprintln(os.Stderr, rule)
}

// Step prints a numbered progress step, e.g. "[2/4] Selecting period".
func Step(current, total int, text string) {
	stepColor.Fprintf(os.Stderr, "[%d/%d] %s\n", current, total, text)
}

// Success prints a green checkmark line.
func Success(text string) {
	successColor.Fprintf(os.Stderr, "✓ %s\n", text)
}

// Info prints an informational line.
func Info(text string) {
	infoColor.Fprintf(os.Stderr, "• %s\n", text)
}

// Warning prints a yellow warning line.
func Warning(text string) {
	warningColor.Fprintf(os.Stderr, "! %s\n", text)
}

// Error prints a red error line.
func Error(text string) {
	errorColor.Fprintf(os.Stderr, "✗ %s\n", text)
}

// Summary prints a label/value pair aligned for result summaries.
func Summary(label string, value any) {
	fmt.Fprintf(os.Stderr, "  %-24s %v\n", label+":", value)
}
