package cmd

import (
	"flag"
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/errors"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/loaders"
	"github.com/go-drift/metaloader/pkg/raster"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Animate a loader in the terminal",
		Long: `Preview plays a loader live in the terminal using half-block
characters, two pixels per cell. The loader is scaled to fit the window.

Press q, Esc or Ctrl-C to quit.

Flags:
  -fps F   Redraw rate (default from config)`,
		Usage: "metaloader preview <loader> [-fps F]",
		Run:   runPreview,
	})
}

func runPreview(env *Env, args []string) error {
	name, args := splitName(args)
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fps := fs.Float64("fps", env.Config.FPS, "frames per second")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if name == "" {
		name = fs.Arg(0)
	}
	if name == "" {
		return fmt.Errorf("loader name is required\n\nUsage: metaloader preview <loader>")
	}
	if *fps <= 0 {
		return fmt.Errorf("fps must be positive")
	}

	l, err := newLoader(env, name)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer screen.Fini()

	return previewLoop(screen, l, *fps, env.Config.Background)
}

// previewLoop steps and paints l until a quit key arrives. Only this
// goroutine touches the loader; the event goroutine just signals.
func previewLoop(screen tcell.Screen, l loaders.Loader, fps float64, bg graphics.Color) error {
	sched := animation.NewScheduler(nil)
	if err := l.Start(sched); err != nil {
		return err
	}
	defer l.Stop()

	quit := make(chan struct{})
	resized := make(chan struct{}, 1)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				screen.Sync()
				select {
				case resized <- struct{}{}:
				default:
				}
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					close(quit)
					return
				}
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	backdrop := backdropColor(bg)
	var canvas *raster.Canvas
	cols, rows := 0, 0
	for {
		select {
		case <-quit:
			return nil
		case <-resized:
			canvas = nil
		case <-ticker.C:
			sched.Step()
			w, h := screen.Size()
			if canvas == nil || w != cols || h != rows {
				cols, rows = w, h
				canvas = fitCanvas(l.IntrinsicSize(), cols, rows-1, bg)
			}
			img, err := paintFrame(l, canvas)
			if err != nil {
				errors.Report(&errors.LoaderError{Op: "preview.frame", Kind: errors.KindRender, Err: err, Loader: l.Name()})
				continue
			}
			drawCells(screen, img, cols, rows-1, backdrop)
			drawStatus(screen, rows-1, l.Name()+"  q: quit")
			screen.Show()
		}
	}
}

// fitCanvas sizes a raster canvas so the loader fills a cols x rows grid
// of half-block cells.
func fitCanvas(size graphics.Size, cols, rows int, bg graphics.Color) *raster.Canvas {
	scale := 1.0
	if size.Width > 0 && size.Height > 0 && cols > 0 && rows > 0 {
		scale = math.Min(float64(cols)/size.Width, float64(2*rows)/size.Height)
	}
	return raster.New(size, raster.Options{Scale: scale, Supersample: 4, Background: bg})
}

// drawCells centers img in the grid, one pixel row per half cell.
func drawCells(screen tcell.Screen, img *image.RGBA, cols, rows int, backdrop colorful.Color) {
	b := img.Bounds()
	ox := (cols - b.Dx()) / 2
	oy := (2*rows - b.Dy()) / 2
	for y := range rows {
		for x := range cols {
			top := pixelColor(img, x-ox, 2*y-oy, backdrop)
			bottom := pixelColor(img, x-ox, 2*y+1-oy, backdrop)
			style := tcell.StyleDefault.Foreground(termColor(top)).Background(termColor(bottom))
			screen.SetContent(x, y, '▀', nil, style)
		}
	}
}

func drawStatus(screen tcell.Screen, row int, text string) {
	style := tcell.StyleDefault.Dim(true)
	for i, r := range []rune(text) {
		screen.SetContent(i, row, r, nil, style)
	}
}

// pixelColor composites the pixel at (x, y) over backdrop. Points outside
// the image are backdrop.
func pixelColor(img *image.RGBA, x, y int, backdrop colorful.Color) colorful.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return backdrop
	}
	p := img.RGBAAt(x, y)
	if p.A == 0 {
		return backdrop
	}
	a := float64(p.A) / 255
	fg := colorful.Color{
		R: float64(p.R) / float64(p.A),
		G: float64(p.G) / float64(p.A),
		B: float64(p.B) / float64(p.A),
	}
	return backdrop.BlendRgb(fg, a).Clamped()
}

// backdropColor is the terminal color behind transparent pixels.
func backdropColor(bg graphics.Color) colorful.Color {
	r, g, b, a := bg.Components()
	if a == 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func termColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
