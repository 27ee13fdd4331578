// Package console formats CLI output, styling it only when stdout is a
// terminal.
package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/reoring/jsonapiv"
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	pointerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))
)

// Styled reports whether output is decorated. Tests switch it off.
var Styled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func applyStyle(style lipgloss.Style, text string) string {
	if Styled {
		return style.Render(text)
	}
	return text
}

// FormatValidationError renders one error as
// "file:pointer: error[status code]: detail".
func FormatValidationError(file string, e jsonapiv.Error) string {
	var b strings.Builder
	if file != "" {
		b.WriteString(applyStyle(filePathStyle, file+":"))
	}
	b.WriteString(applyStyle(pointerStyle, e.Pointer()+":"))
	b.WriteString(" ")
	style := errorStyle
	if e.Status.Family() == jsonapiv.StatusInternalError {
		style = warningStyle
	}
	b.WriteString(applyStyle(style, fmt.Sprintf("error[%d %s]:", e.Status, e.Code)))
	b.WriteString(" ")
	if e.Detail != "" {
		b.WriteString(e.Detail)
	} else {
		b.WriteString(e.Title)
	}
	return b.String()
}

func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ ") + message
}

func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}

func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}

// SummaryRow is one line of RenderSummary.
type SummaryRow struct {
	File   string
	Status string
	Errors int
}

// RenderSummary renders a per-file table with aligned columns.
func RenderSummary(rows []SummaryRow) string {
	if len(rows) == 0 {
		return ""
	}
	headers := []string{"FILE", "STATUS", "ERRORS"}
	cells := make([][]string, 0, len(rows))
	widths := []int{len(headers[0]), len(headers[1]), len(headers[2])}
	for _, r := range rows {
		row := []string{r.File, r.Status, fmt.Sprint(r.Errors)}
		for i, c := range row {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
		cells = append(cells, row)
	}

	var b strings.Builder
	b.WriteString(applyStyle(headerStyle, renderRow(headers, widths)))
	b.WriteString("\n")
	for _, row := range cells {
		b.WriteString(renderRow(row, widths))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], c)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
