package splitpanel

import (
	"github.com/charmbracelet/lipgloss"
)

// Scrollbar characters
const (
	ScrollThumbChar = "\u2588" // Full block for thumb (solid)
	ScrollTrackChar = "\u2502" // Box drawing vertical for track (hollow/border only)
)

// BuildScrollbar returns one cell per row of a track viewHeight tall. The
// thumb is drawn in activeColor when focused and trackColor otherwise.
// Content that fits yields blank cells.
func BuildScrollbar(viewHeight, totalItems, scrollOffset int, activeColor, trackColor lipgloss.Color, focused bool) []string {
	scrollbar := make([]string, viewHeight)

	if totalItems <= viewHeight {
		for i := range scrollbar {
			scrollbar[i] = " "
		}
		return scrollbar
	}

	thumbSize := min(max((viewHeight*viewHeight)/totalItems, 1), max(viewHeight-2, 1))
	trackSpace := max(viewHeight-thumbSize, 0)
	maxScroll := max(totalItems-viewHeight, 1)

	thumbPos := 0
	if trackSpace > 0 {
		thumbPos = min(max((scrollOffset*trackSpace)/maxScroll, 0), trackSpace)
	}

	thumbColor := trackColor
	if focused {
		thumbColor = activeColor
	}
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)
	trackStyle := lipgloss.NewStyle().Foreground(trackColor)

	for i := range viewHeight {
		if i >= thumbPos && i < thumbPos+thumbSize {
			scrollbar[i] = thumbStyle.Render(ScrollThumbChar)
		} else {
			scrollbar[i] = trackStyle.Render(ScrollTrackChar)
		}
	}

	return scrollbar
}
