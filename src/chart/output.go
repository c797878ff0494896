package chart

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/fkuefler/blackjack-lab/src/errors"
	"github.com/fkuefler/blackjack-lab/src/logging"
	"github.com/fkuefler/blackjack-lab/src/strategy"
)

// Result describes a saved chart.
type Result struct {
	Path   string
	Format Format
	Width  int
	Height int
	Bytes  int
}

// Save renders doc and writes it to path. The image is written to a temp file in
// the same directory first and renamed into place, so a failed save leaves any
// previous file at path untouched.
func Save(path string, doc *strategy.Document, opts Options) (*Result, error) {
	opts.Format = FormatForPath(path)
	out, err := Render(doc, opts)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, out.Data); err != nil {
		return nil, err
	}
	logging.Infof("wrote %s chart %dx%d (%d bytes) to %s", out.Format, out.Width, out.Height, len(out.Data), path)
	return &Result{Path: path, Format: out.Format, Width: out.Width, Height: out.Height, Bytes: len(out.Data)}, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "png encode")
	}
	return buf.Bytes(), nil
}

// Crop returns img trimmed to its non-white content plus pad pixels on each side,
// clamped to the original bounds. A blank image is returned unchanged.
func Crop(img image.Image, pad int) image.Image {
	content, ok := contentBounds(img)
	if !ok {
		return img
	}
	r := image.Rect(content.Min.X-pad, content.Min.Y-pad, content.Max.X+pad, content.Max.Y+pad).Intersect(img.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, r.Min, xdraw.Src)
	return dst
}

func contentBounds(img image.Image) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	mark := func(x, y int) {
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := rgba.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x, off = x+1, off+4 {
				px := rgba.Pix[off : off+4 : off+4]
				if px[3] != 0 && (px[0] != 0xff || px[1] != 0xff || px[2] != 0xff) {
					mark(x, y)
				}
			}
		}
	} else {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				if c.A != 0 && (c.R != 0xff || c.G != 0xff || c.B != 0xff) {
					mark(x, y)
				}
			}
		}
	}
	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Fit scales img down with bilinear sampling so it fits in maxW×maxH, keeping its
// aspect ratio. Images that already fit are returned as is.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if maxW <= 0 || maxH <= 0 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return img
	}
	scale := min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
