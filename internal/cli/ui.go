package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roomml/roomml/pkg/pipeline"
	"github.com/roomml/roomml/pkg/validate"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	stylePath    = lipgloss.NewStyle().Foreground(colorGray)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Validation Report
// =============================================================================

// formatIssue renders one issue as "✗ error  root/living  message".
func formatIssue(is validate.Issue) string {
	icon, style := styleIconWarning.Render(iconWarning), styleWarning
	if is.IsError() {
		icon, style = styleIconError.Render(iconError), styleError
	}
	level := style.Width(6).Render(string(is.Level))
	return icon + " " + level + " " + stylePath.Render(is.Path) + "  " + is.Message
}

// printReport prints the outcome for one document: a headline, its issues,
// and a stats line.
func printReport(source string, res *pipeline.Result) {
	errs, warns := validate.Count(res.Issues)
	switch {
	case errs > 0:
		printError("%s: %s", source, countLabel(errs, warns))
	case warns > 0:
		fmt.Println(styleIconWarning.Render(iconWarning) + " " + source + ": " + styleWarning.Render(countLabel(errs, warns)))
	default:
		printSuccess("%s: no issues", source)
	}
	for _, is := range res.Issues {
		fmt.Println("  " + formatIssue(is))
	}
	if res.Box != nil {
		printStats(res.Stats, res.CacheInfo.AnalysisHit)
	}
}

func countLabel(errs, warns int) string {
	return fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warns, "warning"))
}

func plural(n int, word string) string {
	switch {
	case n == 1:
		return "1 " + word
	case strings.HasSuffix(word, "x"):
		return fmt.Sprintf("%d %ses", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// printStats prints document statistics on a single line.
func printStats(st pipeline.Stats, cached bool) {
	var parts []string
	if st.Rooms > 0 {
		parts = append(parts, plural(st.Rooms, "room"))
	}
	if st.Furniture > 0 {
		parts = append(parts, fmt.Sprintf("%d furniture", st.Furniture))
	}
	if st.Openings > 0 {
		parts = append(parts, plural(st.Openings, "opening"))
	}
	parts = append(parts, plural(st.Boxes, "box"))

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	var line strings.Builder
	line.WriteString("  ")
	for _, part := range parts {
		line.WriteString(styleDim.Render(part + " · "))
	}
	line.WriteString(statusStyle.Render(status))
	fmt.Println(line.String())
}
