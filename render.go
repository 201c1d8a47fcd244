package gcpath

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/fixed"
)

type RenderOptions struct {
	Width, Height int
	StrokeWidth   float32
	Title         string
	Color         color.Color
	Background    color.Color
}

var DefaultRenderOptions = RenderOptions{
	Width:       640,
	Height:      480,
	StrokeWidth: 1.5,
	Title:       "G-code Path",
	Color:       color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	Background:  color.White,
}

func (opts RenderOptions) withDefaults() RenderOptions {
	if opts.Width <= 0 {
		opts.Width = DefaultRenderOptions.Width
	}
	if opts.Height <= 0 {
		opts.Height = DefaultRenderOptions.Height
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = DefaultRenderOptions.StrokeWidth
	}
	if opts.Color == nil {
		opts.Color = DefaultRenderOptions.Color
	}
	if opts.Background == nil {
		opts.Background = DefaultRenderOptions.Background
	}
	return opts
}

// Space around the plot area for the title and axis labels.
const (
	marginLeft   = 64
	marginRight  = 24
	marginTop    = 32
	marginBottom = 40
)

var (
	frameColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	textColor  = color.Black
)

// framing maps drawing coordinates into the plot area using the same scale
// on both axes, with Y growing upwards.
func framing(ext Bounds, plot image.Rectangle) f32.Aff3 {
	dx := ext.XMax - ext.XMin
	dy := ext.YMax - ext.YMin
	pw := float64(plot.Dx())
	ph := float64(plot.Dy())

	scale := 1.0
	switch {
	case dx > 0 && dy > 0:
		scale = math.Min(pw/dx, ph/dy)
	case dx > 0:
		scale = pw / dx
	case dy > 0:
		scale = ph / dy
	}

	cx := (ext.XMin + ext.XMax) / 2
	cy := (ext.YMin + ext.YMax) / 2
	px := float64(plot.Min.X) + pw/2
	py := float64(plot.Min.Y) + ph/2
	return f32.Aff3{
		float32(scale), 0, float32(px - scale*cx),
		0, float32(-scale), float32(py + scale*cy),
	}
}

func apply(m f32.Aff3, pt Point) fixed.Point26_6 {
	x := float64(m[0])*pt.X + float64(m[1])*pt.Y + float64(m[2])
	y := float64(m[3])*pt.X + float64(m[4])*pt.Y + float64(m[5])
	return rasterx.ToFixedP(x, y)
}

// unapply maps an image coordinate back into drawing coordinates.
func unapply(m f32.Aff3, x, y float64) Point {
	return Point{
		X: (x - float64(m[2])) / float64(m[0]),
		Y: (y - float64(m[5])) / float64(m[4]),
	}
}

func newDasher(dst draw.Image, width float32, c color.Color) *rasterx.Dasher {
	r := dst.Bounds()
	scanner := rasterx.NewScannerGV(r.Dx(), r.Dy(), dst, r)
	dasher := rasterx.NewDasher(r.Dx(), r.Dy(), scanner)
	dasher.SetStroke(fixed.Int26_6(width*64), 0, rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	dasher.SetColor(c)
	return dasher
}

func drawText(dst draw.Image, x, y int, s string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func formatTick(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// Render draws d into dst: the strokes framed with equal X and Y scale inside
// a frame, the title above, and the axis names and end values around it.
func Render(dst draw.Image, d Drawing, opts RenderOptions) {
	opts = opts.withDefaults()
	r := dst.Bounds()
	draw.Draw(dst, r, image.NewUniform(opts.Background), image.Point{}, draw.Src)

	plot := image.Rect(r.Min.X+marginLeft, r.Min.Y+marginTop, r.Max.X-marginRight,
		r.Max.Y-marginBottom)
	if plot.Empty() {
		plot = r
	}

	frame := newDasher(dst, 1, frameColor)
	corners := []Point{
		{float64(plot.Min.X), float64(plot.Min.Y)},
		{float64(plot.Max.X), float64(plot.Min.Y)},
		{float64(plot.Max.X), float64(plot.Max.Y)},
		{float64(plot.Min.X), float64(plot.Max.Y)},
	}
	frame.Start(rasterx.ToFixedP(corners[0].X, corners[0].Y))
	for _, c := range corners[1:] {
		frame.Line(rasterx.ToFixedP(c.X, c.Y))
	}
	frame.Stop(true)
	frame.Draw()

	if opts.Title != "" {
		drawText(dst, (r.Min.X+r.Max.X-textWidth(opts.Title))/2, r.Min.Y+marginTop-10, opts.Title)
	}
	drawText(dst, (plot.Min.X+plot.Max.X)/2, r.Max.Y-8, "X")
	drawText(dst, r.Min.X+6, (plot.Min.Y+plot.Max.Y)/2, "Y")

	ext := d.Extent()
	if !ext.Valid() {
		return
	}

	m := framing(ext, plot)
	lo := unapply(m, float64(plot.Min.X), float64(plot.Max.Y))
	hi := unapply(m, float64(plot.Max.X), float64(plot.Min.Y))
	drawText(dst, plot.Min.X, plot.Max.Y+16, formatTick(lo.X))
	s := formatTick(hi.X)
	drawText(dst, plot.Max.X-textWidth(s), plot.Max.Y+16, s)
	s = formatTick(lo.Y)
	drawText(dst, plot.Min.X-textWidth(s)-4, plot.Max.Y, s)
	s = formatTick(hi.Y)
	drawText(dst, plot.Min.X-textWidth(s)-4, plot.Min.Y+10, s)

	path := newDasher(dst, opts.StrokeWidth, opts.Color)
	for _, s := range d.Strokes {
		if len(s) < 2 {
			continue
		}
		path.Start(apply(m, s[0]))
		for _, pt := range s[1:] {
			path.Line(apply(m, pt))
		}
		path.Stop(false)
	}
	path.Draw()
}

// EncodePNG renders d into a new image and writes it to w as a PNG.
func EncodePNG(w io.Writer, d Drawing, opts RenderOptions) error {
	opts = opts.withDefaults()
	img := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	Render(img, d, opts)
	return png.Encode(w, img)
}
