package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/concurrentcube"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// cellStyles paints facelets by color: White, Orange, Green, Red, Blue,
// Yellow.
var cellStyles = [concurrentcube.NumFaces]lipgloss.Style{
	lipgloss.NewStyle().Background(lipgloss.Color("#FFFFFF")),
	lipgloss.NewStyle().Background(lipgloss.Color("#FF8C00")),
	lipgloss.NewStyle().Background(lipgloss.Color("#00A651")),
	lipgloss.NewStyle().Background(lipgloss.Color("#C41E3A")),
	lipgloss.NewStyle().Background(lipgloss.Color("#0051BA")),
	lipgloss.NewStyle().Background(lipgloss.Color("#FFD500")),
}

// renderNet draws the snapshot as an unfolded net: Up on top, then Left,
// Front, Right and Back side by side, then Down.
func renderNet(s concurrentcube.Snapshot) string {
	n := s.Size()
	var sb strings.Builder
	pad := strings.Repeat("  ", n)

	row := func(face, r int) {
		for c := 0; c < n; c++ {
			color := s.At(face, r, c)
			sb.WriteString(cellStyles[color].Render("  "))
		}
	}

	for r := 0; r < n; r++ {
		sb.WriteString(pad)
		row(0, r)
		sb.WriteByte('\n')
	}
	for r := 0; r < n; r++ {
		for _, face := range []int{1, 2, 3, 4} {
			row(face, r)
		}
		sb.WriteByte('\n')
	}
	for r := 0; r < n; r++ {
		sb.WriteString(pad)
		row(5, r)
		sb.WriteByte('\n')
	}

	return sb.String()
}
