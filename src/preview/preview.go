// Package preview prints a strategy grid to a terminal, each cell showing its
// abbreviation on the action's color.
package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fkuefler/blackjack-lab/src/strategy"
)

const cellWidth = 4

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Width(6).Align(lipgloss.Right).PaddingRight(1)
	blankStyle  = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	rulesStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#808080")).
			Padding(0, 1)
)

func cellStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#" + hex))
}

// Render returns the grid, a legend line and the rules text of doc.
func Render(doc *strategy.Document) string {
	g := doc.Grid
	colors := doc.Mapping.Colors()

	var b strings.Builder
	b.WriteString(labelStyle.Render(""))
	for _, c := range g.Cols {
		b.WriteString(headerStyle.Inherit(blankStyle).Render(c))
	}
	b.WriteByte('\n')

	for i, r := range g.Rows {
		b.WriteString(labelStyle.Render(r))
		for j, v := range g.Numeric[i] {
			abbr := doc.Mapping.Abbreviation(g.Text[i][j])
			if v == strategy.Empty || v >= len(colors) {
				b.WriteString(blankStyle.Render(abbr))
				continue
			}
			b.WriteString(cellStyle(colors[v]).Render(abbr))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(Legend(doc.Mapping))
	b.WriteByte('\n')
	if strings.TrimSpace(doc.Rules) != "" {
		b.WriteString(rulesStyle.Render(doc.Rules))
		b.WriteByte('\n')
	}
	return b.String()
}

// Legend renders one swatch and name per mapped action, in mapping order.
func Legend(m strategy.Mapping) string {
	parts := []string{titleStyle.Render("Optimal Action:")}
	for _, e := range m.Entries() {
		parts = append(parts, cellStyle(e.Color).Render(e.Abbreviation)+" "+string(e.Action))
	}
	return strings.Join(parts, "  ")
}
