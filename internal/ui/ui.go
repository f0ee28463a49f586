// Package ui prints the CLI's colored status lines.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Printer writes styled lines to w.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, args...)))
}

// Info prints a headline such as "Initializing ... in <dir>".
func (p *Printer) Info(format string, args ...any) { p.line(infoStyle, format, args...) }

// Step prints the progress message of an install step.
func (p *Printer) Step(format string, args ...any) { p.line(stepStyle, format, args...) }

// Success prints a completion line.
func (p *Printer) Success(format string, args ...any) { p.line(successStyle, format, args...) }

// Warn prints a non-fatal problem.
func (p *Printer) Warn(format string, args ...any) { p.line(warnStyle, format, args...) }

// Error prints a failure.
func (p *Printer) Error(format string, args ...any) { p.line(errorStyle, format, args...) }

// Accent prints a highlighted hint, such as a command to run next.
func (p *Printer) Accent(format string, args ...any) { p.line(accentStyle, format, args...) }

// Dim prints secondary detail.
func (p *Printer) Dim(format string, args ...any) { p.line(dimStyle, format, args...) }

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
