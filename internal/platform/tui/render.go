package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcane-flight/internal/core"
)

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           fg("1"),
	core.ColorGreen:         fg("2"),
	core.ColorYellow:        fg("3"),
	core.ColorBlue:          fg("4"),
	core.ColorMagenta:       fg("5"),
	core.ColorCyan:          fg("6"),
	core.ColorWhite:         fg("7"),
	core.ColorBrightRed:     fg("9"),
	core.ColorBrightGreen:   fg("10"),
	core.ColorBrightYellow:  fg("11"),
	core.ColorBrightBlue:    fg("12"),
	core.ColorBrightMagenta: fg("13"),
	core.ColorBrightCyan:    fg("14"),
	core.ColorBrightWhite:   fg("15"),
	core.ColorOrange:        fg("208"),
	core.ColorGray:          fg("245"),

	core.ColorViolet:   fg("141"),
	core.ColorLavender: fg("183"),
	core.ColorPink:     fg("213"),
	core.ColorGold:     fg("221"),
	core.ColorIndigo:   fg("61"),
	core.ColorMint:     fg("85"),
	core.ColorSteel:    fg("67"),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
