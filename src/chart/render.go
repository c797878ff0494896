// Package chart draws a strategy grid with go-chart's low-level Renderer: colored
// cells, gridlines, axis labels, abbreviations, legend, rules box and attribution.
//
// The renderer is the single drawing context of a render; it is created by Render
// and handed explicitly to every drawing step.
package chart

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fkuefler/blackjack-lab/src/errors"
	"github.com/fkuefler/blackjack-lab/src/logging"
	"github.com/fkuefler/blackjack-lab/src/strategy"
	"github.com/fkuefler/blackjack-lab/src/types"
)

// Format selects the encoder.
type Format int

const (
	PNG Format = iota
	SVG
)

func (f Format) String() string {
	if f == SVG {
		return "svg"
	}
	return "png"
}

// FormatForPath picks SVG for .svg paths and PNG for everything else.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return SVG
	}
	return PNG
}

// Options control one render.
type Options struct {
	DPI         float64
	Format      Format
	Attribution string
	LegendTitle string
	RowAxisName string
	ColAxisName string
	// Crop trims PNG output to the drawn content plus a 0.1 inch pad.
	Crop bool
}

// DefaultOptions returns the options of a saved chart.
func DefaultOptions() Options {
	return Options{
		DPI:         600,
		Format:      PNG,
		Attribution: "github.com/fkuefler/blackjack-lab",
		LegendTitle: "Optimal Action",
		RowAxisName: types.ColumnPlayerHand,
		ColAxisName: types.ColumnDealerUpcard,
		Crop:        true,
	}
}

// Output is an encoded chart.
type Output struct {
	Data   []byte
	Format Format
	Width  int
	Height int
}

// Image decodes PNG output.
func (o *Output) Image() (image.Image, error) {
	if o.Format != PNG {
		return nil, errors.Newf("cannot decode %s output as an image", o.Format)
	}
	img, _, err := image.Decode(bytes.NewReader(o.Data))
	if err != nil {
		return nil, errors.Wrap(err, "decode chart")
	}
	return img, nil
}

var (
	colorText   = drawing.ColorBlack
	colorGrid   = drawing.ColorBlack
	colorBorder = drawing.Color{R: 128, G: 128, B: 128, A: 255}
	colorCredit = drawing.Color{R: 128, G: 128, B: 128, A: 255}
	colorRulesF = drawing.Color{R: 255, G: 255, B: 255, A: 204}
)

func provider(f Format) gochart.RendererProvider {
	if f == SVG {
		return gochart.SVG
	}
	return gochart.PNG
}

func newRenderer(f Format, w, h int, dpi float64) (gochart.Renderer, error) {
	r, err := provider(f)(w, h)
	if err != nil {
		return nil, errors.Wrap(err, "create renderer")
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, errors.Wrap(err, "load font")
	}
	r.SetDPI(dpi)
	r.SetFont(font)
	return r, nil
}

// Render lays out and draws doc, then encodes it in opts.Format.
func Render(doc *strategy.Document, opts Options) (*Output, error) {
	defer logging.TimeTrack(time.Now(), "render chart")
	if doc == nil || doc.Grid == nil {
		return nil, errors.New("nothing to render")
	}
	if doc.Mapping.Len() == 0 {
		return nil, errors.Parsef("no recognized actions to color")
	}
	if opts.DPI <= 0 {
		return nil, errors.Newf("invalid dpi %v", opts.DPI)
	}

	m, err := newRenderer(opts.Format, 1, 1, opts.DPI)
	if err != nil {
		return nil, err
	}
	l := ComputeLayout(m, doc, opts)

	r, err := newRenderer(opts.Format, l.Width, l.Height, opts.DPI)
	if err != nil {
		return nil, err
	}
	Draw(r, l, doc, opts)

	out := &Output{Format: opts.Format, Width: l.Width, Height: l.Height}
	if opts.Format == SVG {
		var buf bytes.Buffer
		if err := r.Save(&buf); err != nil {
			return nil, errors.Wrap(err, "encode svg")
		}
		out.Data = buf.Bytes()
		return out, nil
	}

	iw := &gochart.ImageWriter{}
	if err := r.Save(iw); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	img, err := iw.Image()
	if err != nil {
		return nil, errors.Wrap(err, "decode png")
	}
	if opts.Crop {
		img = Crop(img, l.px(0.1*baseDPI))
	}
	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	out.Data = data
	out.Width, out.Height = img.Bounds().Dx(), img.Bounds().Dy()
	return out, nil
}

// Draw paints doc onto r using the geometry in l.
func Draw(r gochart.Renderer, l Layout, doc *strategy.Document, opts Options) {
	p := painter{r: r, l: l}
	p.fill(gochart.Box{Right: l.Width, Bottom: l.Height}, drawing.ColorWhite)
	p.cells(doc)
	p.gridLines()
	p.axes(doc.Grid, opts)
	p.abbreviations(doc)
	p.legend(doc.Mapping, opts.LegendTitle)
	p.rules()
	if opts.Attribution != "" {
		p.text(creditFontSize, colorCredit, opts.Attribution, l.CreditX, l.CreditY)
	}
}

type painter struct {
	r gochart.Renderer
	l Layout
}

func (p painter) path(b gochart.Box) {
	p.r.MoveTo(b.Left, b.Top)
	p.r.LineTo(b.Right, b.Top)
	p.r.LineTo(b.Right, b.Bottom)
	p.r.LineTo(b.Left, b.Bottom)
	p.r.Close()
}

func (p painter) fill(b gochart.Box, c drawing.Color) {
	defer p.r.ResetStyle()
	p.r.SetFillColor(c)
	p.path(b)
	p.r.Fill()
}

func (p painter) box(b gochart.Box, fill, stroke drawing.Color, width float64) {
	defer p.r.ResetStyle()
	p.r.SetFillColor(fill)
	p.r.SetStrokeColor(stroke)
	p.r.SetStrokeWidth(width)
	p.path(b)
	p.r.FillStroke()
}

func (p painter) line(x0, y0, x1, y1 int, c drawing.Color, width float64) {
	defer p.r.ResetStyle()
	p.r.SetStrokeColor(c)
	p.r.SetStrokeWidth(width)
	p.r.MoveTo(x0, y0)
	p.r.LineTo(x1, y1)
	p.r.Stroke()
}

func (p painter) font(size float64, c drawing.Color) {
	if f, err := gochart.GetDefaultFont(); err == nil {
		p.r.SetFont(f)
	}
	p.r.SetFontSize(size)
	p.r.SetFontColor(c)
}

// text draws body with its baseline at y.
func (p painter) text(size float64, c drawing.Color, body string, x, y int) {
	defer p.r.ResetStyle()
	p.font(size, c)
	p.r.Text(body, x, y)
}

func (p painter) measure(size float64, body string) gochart.Box {
	p.r.SetFontSize(size)
	return p.r.MeasureText(body)
}

func (p painter) centered(size float64, c drawing.Color, body string, b gochart.Box) {
	if body == "" {
		return
	}
	tb := p.measure(size, body)
	x := b.Left + (b.Width()-tb.Width())/2
	y := b.Top + (b.Height()+tb.Height())/2
	p.text(size, c, body, x, y)
}

func (p painter) cells(doc *strategy.Document) {
	colors := parseColors(doc.Mapping.Colors())
	for i, row := range doc.Grid.Numeric {
		for j, v := range row {
			if v == strategy.Empty || v >= len(colors) {
				continue
			}
			p.fill(p.l.Cell(i, j), colors[v])
		}
	}
}

func (p painter) gridLines() {
	w := gridLineWidth * p.l.Scale
	g := p.l.Grid
	for j := 0; j <= p.l.Cols; j++ {
		x := g.Left + j*p.l.CellWidth
		p.line(x, g.Top, x, g.Bottom, colorGrid, w)
	}
	for i := 0; i <= p.l.Rows; i++ {
		y := g.Top + i*p.l.CellHeight
		p.line(g.Left, y, g.Right, y, colorGrid, w)
	}
}

func (p painter) axes(g *strategy.Grid, opts Options) {
	l := p.l
	// Column labels sit on the top edge, with the axis name above them.
	for j, c := range g.Cols {
		cell := l.Cell(0, j)
		tb := p.measure(tickFontSize, c)
		p.text(tickFontSize, colorText, c, cell.Left+(cell.Width()-tb.Width())/2, l.ColLabelBaseline)
	}
	if opts.ColAxisName != "" {
		tb := p.measure(axisFontSize, opts.ColAxisName)
		p.text(axisFontSize, colorText, opts.ColAxisName, l.Grid.Left+(l.Grid.Width()-tb.Width())/2, l.XAxisNameBaseline)
	}

	for i, r := range g.Rows {
		cell := l.Cell(i, 0)
		tb := p.measure(tickFontSize, r)
		p.text(tickFontSize, colorText, r, l.RowLabelRight-tb.Width(), cell.Top+(cell.Height()+tb.Height())/2)
	}
	if opts.RowAxisName != "" {
		tb := p.measure(axisFontSize, opts.RowAxisName)
		p.r.SetTextRotation(gochart.DegreesToRadians(270))
		p.text(axisFontSize, colorText, opts.RowAxisName, l.YAxisNameX, l.Grid.Top+(l.Grid.Height()+tb.Width())/2)
		p.r.ClearTextRotation()
	}
}

func (p painter) abbreviations(doc *strategy.Document) {
	for i, row := range doc.Grid.Text {
		for j, a := range row {
			p.centered(cellFontSize, colorText, doc.Mapping.Abbreviation(a), p.l.Cell(i, j))
		}
	}
}

func (p painter) legend(m strategy.Mapping, title string) {
	l := p.l
	if m.Len() == 0 {
		return
	}
	pad := l.px(boxPad)
	p.box(l.Legend, drawing.ColorWhite, drawing.ColorBlack, l.Scale)

	line := gochart.Box{Left: l.Legend.Left + pad, Right: l.Legend.Right - pad, Top: l.Legend.Top + pad}
	line.Bottom = line.Top + l.LegendLine
	tb := p.measure(legendFontSize, title)
	p.text(legendFontSize, colorText, title, line.Left+(line.Width()-tb.Width())/2, line.Top+(line.Height()+tb.Height())/2)

	sw, sh := l.px(swatchWidth), l.px(swatchHeight)
	colors := parseColors(m.Colors())
	for i, a := range m.Actions() {
		line.Top += l.LegendLine
		line.Bottom += l.LegendLine
		swatch := gochart.Box{Left: line.Left, Right: line.Left + sw}
		swatch.Top = line.Top + (line.Height()-sh)/2
		swatch.Bottom = swatch.Top + sh
		p.box(swatch, colors[i], drawing.ColorBlack, l.Scale*0.5)
		tb := p.measure(legendFontSize, string(a))
		p.text(legendFontSize, colorText, string(a), swatch.Right+l.px(swatchGap), line.Top+(line.Height()+tb.Height())/2)
	}
}

func (p painter) rules() {
	l := p.l
	if len(l.RulesLines) == 0 {
		return
	}
	pad := l.px(boxPad)
	p.box(l.Rules, colorRulesF, colorBorder, l.Scale)
	_, lineH := textSize(p.r, rulesFontSize, "Hg")
	for i, s := range l.RulesLines {
		top := l.Rules.Top + pad + i*l.RulesLine
		p.text(rulesFontSize, colorText, s, l.Rules.Left+pad, top+(l.RulesLine+lineH)/2)
	}
}

func parseColors(hexes []string) []drawing.Color {
	out := make([]drawing.Color, len(hexes))
	for i, h := range hexes {
		out[i] = drawing.ColorFromHex(strings.TrimPrefix(h, "#"))
	}
	return out
}
