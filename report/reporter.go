// Package report provides the console reporter injected into each pipeline
// component, replacing any process-global output state.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
const (
	colorPrimary = "#7D56F4"
	colorSuccess = "#04B575"
	colorWarn    = "#FFA500"
	colorError   = "#FF0000"
	colorDim     = "#626262"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarn))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDim))
)

// Reporter writes styled status lines to a single output stream.
type Reporter struct {
	out io.Writer
}

// New returns a reporter writing to stderr so stdout stays clean for data
func New() *Reporter {
	return &Reporter{out: os.Stderr}
}

// NewWriter returns a reporter writing to the given stream
func NewWriter(w io.Writer) *Reporter {
	return &Reporter{out: w}
}

// NewQuiet returns a reporter that discards all output. Used in tests.
func NewQuiet() *Reporter {
	return &Reporter{out: io.Discard}
}

// Title prints a bold heading line
func (r *Reporter) Title(format string, args ...any) {
	fmt.Fprintln(r.out, titleStyle.Render(fmt.Sprintf(format, args...)))
}

// Info prints a plain status line
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Success prints a confirmation line with a check mark
func (r *Reporter) Success(format string, args ...any) {
	fmt.Fprintln(r.out, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warn prints a non-fatal problem line
func (r *Reporter) Warn(format string, args ...any) {
	fmt.Fprintln(r.out, warnStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Error prints a failure line
func (r *Reporter) Error(format string, args ...any) {
	fmt.Fprintln(r.out, errorStyle.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Dim prints a low-priority detail line
func (r *Reporter) Dim(format string, args ...any) {
	fmt.Fprintln(r.out, dimStyle.Render(fmt.Sprintf(format, args...)))
}
