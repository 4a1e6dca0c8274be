package display

import (
	"github.com/muesli/reflow/truncate"
)

const Ellipsis = "…"

// Fit shortens s to at most width terminal cells, preserving ANSI escape
// sequences and ending in an ellipsis when cut. A width below one leaves s
// alone.
func Fit(s string, width int) string {
	if width < 1 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), Ellipsis)
}
