package logger

import (
	"fmt"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for run summaries.
// Green: totals of a successful run
// Cyan: labels
// Bold: headers
type colorScheme struct {
	header *color.Color
	label  *color.Color
	count  *color.Color
	path   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		header: color.New(color.Bold),
		label:  color.New(color.FgCyan),
		count:  color.New(color.FgGreen),
		path:   color.New(color.FgHiWhite, color.Underline),
	}
}

// formatColorizedMetric formats "label: value" with a cyan label.
func formatColorizedMetric(label string, value interface{}, valueColor *color.Color, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), valueColor.Sprintf("%v", value))
}
