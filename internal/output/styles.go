package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for CLI summary lines.
var (
	// ColorGreen marks a successful build or stage step.
	ColorGreen = lipgloss.Color("82")

	// ColorRed marks a failed step.
	ColorRed = lipgloss.Color("196")

	// ColorYellow marks warnings such as a skipped backend.
	ColorYellow = lipgloss.Color("220")

	// ColorCyan styles nouns: package names, paths, targets.
	ColorCyan = lipgloss.Color("14")
)

// Semantic styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleError   = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleNoun    = lipgloss.NewStyle().Foreground(ColorCyan)
)

// Successf renders a success summary line.
func Successf(format string, args ...interface{}) string {
	return StyleSuccess.Render(fmt.Sprintf(format, args...))
}

// Errorf renders a failure summary line.
func Errorf(format string, args ...interface{}) string {
	return StyleError.Render(fmt.Sprintf(format, args...))
}

// Noun renders an identifiable noun (package name, staged path).
func Noun(value string) string {
	return StyleNoun.Render(value)
}
