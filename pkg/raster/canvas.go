// Package raster paints loader frames into RGBA images.
//
// Canvas implements graphics.Canvas on top of golang.org/x/image/vector.
// Frames are drawn Supersample times larger than the target and scaled
// down with a Catmull-Rom filter, which smooths the connector edges far
// better than the rasterizer's own coverage alone.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/go-drift/metaloader/pkg/graphics"
)

// Options controls output resolution.
type Options struct {
	// Scale multiplies the logical canvas size to get output pixels.
	Scale float64
	// Supersample is the internal oversampling factor. Values below 1
	// are treated as 1.
	Supersample int
	// Background fills the canvas before every frame.
	Background graphics.Color
}

// DefaultOptions renders at 1x with 2x supersampling on a transparent
// background.
func DefaultOptions() Options {
	return Options{Scale: 1, Supersample: 2, Background: graphics.ColorTransparent}
}

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498307936

// Canvas rasterizes fills into an oversampled RGBA buffer.
type Canvas struct {
	opts   Options
	size   graphics.Size
	factor float64
	buf    *image.RGBA
	z      *vector.Rasterizer

	origin graphics.Offset
	stack  []graphics.Offset
}

// New returns a canvas of the given logical size, cleared to the
// background color.
func New(size graphics.Size, opts Options) *Canvas {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	opts.Supersample = max(opts.Supersample, 1)
	factor := opts.Scale * float64(opts.Supersample)
	w := max(int(math.Ceil(size.Width*factor)), 1)
	h := max(int(math.Ceil(size.Height*factor)), 1)
	c := &Canvas{
		opts:   opts,
		size:   size,
		factor: factor,
		buf:    image.NewRGBA(image.Rect(0, 0, w, h)),
		z:      vector.NewRasterizer(w, h),
	}
	c.Clear(opts.Background)
	return c
}

// Reset clears the canvas for the next frame and drops any transform.
func (c *Canvas) Reset() {
	c.origin = graphics.Offset{}
	c.stack = c.stack[:0]
	c.Clear(c.opts.Background)
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.origin)
}

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.origin = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) Translate(dx, dy float64) {
	c.origin = c.origin.Add(graphics.Offset{X: dx, Y: dy})
}

func (c *Canvas) Clear(col graphics.Color) {
	draw.Draw(c.buf, c.buf.Bounds(), image.NewUniform(toNRGBA(col)), image.Point{}, draw.Src)
}

func (c *Canvas) Size() graphics.Size {
	return c.size
}

// DrawCircle fills a circle. Stroke paints are filled as well.
func (c *Canvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	if radius <= 0 || paint.Color>>24 == 0 {
		return
	}
	c.z.Reset(c.buf.Bounds().Dx(), c.buf.Bounds().Dy())
	cx, cy := c.point(center.X, center.Y)
	r := float32(radius * c.factor)
	k := r * kappa
	c.z.MoveTo(cx+r, cy)
	c.z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	c.z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	c.z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	c.z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	c.z.ClosePath()
	c.fill(paint.Color)
}

// DrawPath fills path with the nonzero rule the rasterizer implements.
// Open subpaths are closed implicitly.
func (c *Canvas) DrawPath(path *graphics.Path, paint graphics.Paint) {
	if path == nil || path.IsEmpty() || paint.Color>>24 == 0 {
		return
	}
	c.z.Reset(c.buf.Bounds().Dx(), c.buf.Bounds().Dy())
	open := false
	for _, cmd := range path.Commands {
		switch cmd.Op {
		case graphics.PathOpMoveTo:
			if open {
				c.z.ClosePath()
			}
			x, y := c.point(cmd.Args[0], cmd.Args[1])
			c.z.MoveTo(x, y)
			open = true
		case graphics.PathOpLineTo:
			x, y := c.point(cmd.Args[0], cmd.Args[1])
			c.z.LineTo(x, y)
		case graphics.PathOpQuadTo:
			bx, by := c.point(cmd.Args[0], cmd.Args[1])
			x, y := c.point(cmd.Args[2], cmd.Args[3])
			c.z.QuadTo(bx, by, x, y)
		case graphics.PathOpClose:
			c.z.ClosePath()
			open = false
		}
	}
	if open {
		c.z.ClosePath()
	}
	c.fill(paint.Color)
}

func (c *Canvas) point(x, y float64) (float32, float32) {
	return float32((x + c.origin.X) * c.factor), float32((y + c.origin.Y) * c.factor)
}

func (c *Canvas) fill(col graphics.Color) {
	c.z.DrawOp = draw.Over
	c.z.Draw(c.buf, c.buf.Bounds(), image.NewUniform(toNRGBA(col)), image.Point{})
}

// Image returns the frame at output resolution. The result is a fresh
// image that later drawing does not touch.
func (c *Canvas) Image() *image.RGBA {
	w := max(int(math.Ceil(c.size.Width*c.opts.Scale)), 1)
	h := max(int(math.Ceil(c.size.Height*c.opts.Scale)), 1)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	if c.opts.Supersample == 1 {
		draw.Copy(out, image.Point{}, c.buf, c.buf.Bounds(), draw.Src, nil)
		return out
	}
	draw.CatmullRom.Scale(out, out.Bounds(), c.buf, c.buf.Bounds(), draw.Src, nil)
	return out
}

func toNRGBA(c graphics.Color) color.NRGBA {
	r, g, b, a := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
