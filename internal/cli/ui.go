package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/catalogprobe/pkg/probe"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - labels
	colorGreen  = lipgloss.Color("35")  // Green - OK
	colorYellow = lipgloss.Color("220") // Amber - WARNING
	colorRed    = lipgloss.Color("167") // Soft red - CRITICAL
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - UNKNOWN
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var statusStyles = map[probe.Status]lipgloss.Style{
	probe.OK:       lipgloss.NewStyle().Foreground(colorGreen),
	probe.Warning:  lipgloss.NewStyle().Foreground(colorYellow),
	probe.Critical: lipgloss.NewStyle().Foreground(colorRed),
	probe.Unknown:  lipgloss.NewStyle().Foreground(colorGray),
}

// =============================================================================
// Icons
// =============================================================================

var statusIcons = map[probe.Status]string{
	probe.OK:       "✓",
	probe.Warning:  "!",
	probe.Critical: "✗",
	probe.Unknown:  "?",
}

// =============================================================================
// Report Output
// =============================================================================

// printSummary prints the report status line, which monitoring systems read
// as the probe's one-line output.
func printSummary(w io.Writer, r *probe.Report) {
	fmt.Fprintln(w, statusStyles[r.Status].Bold(true).Render(r.Summary()))
}

// printResult prints one check outcome.
func printResult(w io.Writer, res probe.Result) {
	style := statusStyles[res.Status]
	label := lipgloss.NewStyle().Foreground(colorCyan).Render(fmt.Sprintf("%-16s", res.Check))
	fmt.Fprintln(w, "  "+style.Render(statusIcons[res.Status])+" "+label+" "+StyleDim.Render(res.Message))
}

// printReport prints the summary followed by every result.
func printReport(w io.Writer, r *probe.Report) {
	printSummary(w, r)
	for _, res := range r.Results {
		printResult(w, res)
	}
	if r.URL != "" {
		printKeyValue(w, "entry", r.URL)
	}
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(8)
	fmt.Fprintln(w, "  "+keyStyle.Render(key)+" "+StyleValue.Render(value))
}
