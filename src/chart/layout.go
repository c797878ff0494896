package chart

import (
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/fkuefler/blackjack-lab/src/strategy"
)

// Geometry is specified in pixels at baseDPI and scaled to the target DPI.
const baseDPI = 100.0

// Font sizes in points.
const (
	tickFontSize   = 10.0
	axisFontSize   = 12.0
	cellFontSize   = 10.0
	legendFontSize = 10.0
	rulesFontSize  = 10.0
	creditFontSize = 9.0
)

const (
	margin        = 16.0
	cellWidth     = 48.0
	cellHeight    = 22.0
	labelGap      = 6.0
	sideGap       = 28.0
	boxPad        = 8.0
	swatchWidth   = 20.0
	swatchHeight  = 12.0
	swatchGap     = 8.0
	legendLineGap = 6.0
	blockGap      = 16.0
	gridLineWidth = 1.5
	rulesSpacing  = 1.6
)

// Layout is the pixel geometry of one chart at one DPI.
type Layout struct {
	Scale         float64
	Width, Height int

	Grid       gochart.Box
	Rows, Cols int
	CellWidth  int
	CellHeight int

	XAxisNameBaseline int
	YAxisNameX        int
	ColLabelBaseline  int
	RowLabelRight     int

	Legend     gochart.Box
	LegendLine int

	Rules      gochart.Box
	RulesLines []string
	RulesLine  int

	CreditX, CreditY int
}

// Cell returns the box of grid cell (i, j).
func (l Layout) Cell(i, j int) gochart.Box {
	left := l.Grid.Left + j*l.CellWidth
	top := l.Grid.Top + i*l.CellHeight
	return gochart.Box{Top: top, Left: left, Right: left + l.CellWidth, Bottom: top + l.CellHeight}
}

func (l Layout) px(v float64) int { return int(math.Round(v * l.Scale)) }

// measurer is the part of a go-chart Renderer needed to size text.
type measurer interface {
	SetFontSize(size float64)
	MeasureText(body string) gochart.Box
}

func textSize(m measurer, size float64, body string) (int, int) {
	m.SetFontSize(size)
	b := m.MeasureText(body)
	return b.Width(), b.Height()
}

func maxWidth(m measurer, size float64, items []string) int {
	w := 0
	for _, s := range items {
		if tw, _ := textSize(m, size, s); tw > w {
			w = tw
		}
	}
	return w
}

// ComputeLayout sizes the canvas for doc: axis labels left and above the grid,
// legend, rules box and attribution in a side panel to the right.
func ComputeLayout(m measurer, doc *strategy.Document, opts Options) Layout {
	l := Layout{Scale: opts.DPI / baseDPI}
	g := doc.Grid
	l.Rows, l.Cols = len(g.Rows), len(g.Cols)
	l.CellWidth, l.CellHeight = l.px(cellWidth), l.px(cellHeight)

	_, yNameH := textSize(m, axisFontSize, opts.RowAxisName)
	_, xNameH := textSize(m, axisFontSize, opts.ColAxisName)
	_, tickH := textSize(m, tickFontSize, "10A")
	rowLabelW := maxWidth(m, tickFontSize, g.Rows)

	l.YAxisNameX = l.px(margin) + yNameH
	l.RowLabelRight = l.YAxisNameX + l.px(2*labelGap) + rowLabelW
	l.XAxisNameBaseline = l.px(margin) + xNameH
	l.ColLabelBaseline = l.XAxisNameBaseline + l.px(labelGap) + tickH

	l.Grid.Left = l.RowLabelRight + l.px(labelGap)
	l.Grid.Top = l.ColLabelBaseline + l.px(labelGap)
	l.Grid.Right = l.Grid.Left + l.Cols*l.CellWidth
	l.Grid.Bottom = l.Grid.Top + l.Rows*l.CellHeight

	side := l.Grid.Right + l.px(sideGap)
	pad := l.px(boxPad)

	// Legend: title line plus one line per mapped action.
	names := make([]string, 0, doc.Mapping.Len())
	for _, a := range doc.Mapping.Actions() {
		names = append(names, string(a))
	}
	titleW, titleH := textSize(m, legendFontSize, opts.LegendTitle)
	entryW := l.px(swatchWidth+swatchGap) + maxWidth(m, legendFontSize, names)
	l.LegendLine = max(titleH, l.px(swatchHeight)) + l.px(legendLineGap)
	l.Legend = gochart.Box{
		Top:    l.Grid.Top,
		Left:   side,
		Right:  side + max(titleW, entryW) + 2*pad,
		Bottom: l.Grid.Top + 2*pad + (len(names)+1)*l.LegendLine,
	}

	// Rules box: a quarter of the way down the grid unless the legend reaches further.
	right := l.Legend.Right
	bottom := l.Grid.Bottom
	if strings.TrimSpace(doc.Rules) != "" {
		l.RulesLines = strings.Split(doc.Rules, "\n")
		_, lineH := textSize(m, rulesFontSize, "Hg")
		l.RulesLine = int(math.Round(float64(lineH) * rulesSpacing))
		top := max(l.Legend.Bottom+l.px(blockGap), l.Grid.Top+(l.Grid.Bottom-l.Grid.Top)/4)
		l.Rules = gochart.Box{
			Top:    top,
			Left:   side,
			Right:  side + maxWidth(m, rulesFontSize, l.RulesLines) + 2*pad,
			Bottom: top + len(l.RulesLines)*l.RulesLine + 2*pad,
		}
		right = max(right, l.Rules.Right)
		bottom = max(bottom, l.Rules.Bottom)
	}

	l.CreditX = side
	l.CreditY = l.Grid.Bottom
	if opts.Attribution != "" {
		creditW, creditH := textSize(m, creditFontSize, opts.Attribution)
		if l.Rules.Bottom > 0 && l.CreditY-creditH < l.Rules.Bottom+l.px(labelGap) {
			l.CreditY = l.Rules.Bottom + l.px(labelGap) + creditH
		}
		right = max(right, side+creditW)
		bottom = max(bottom, l.CreditY)
	}

	l.Width = right + l.px(margin)
	l.Height = bottom + l.px(margin)
	return l
}
