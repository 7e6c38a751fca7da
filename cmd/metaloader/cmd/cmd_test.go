package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/go-drift/metaloader/cmd/metaloader/internal/config"
	"github.com/go-drift/metaloader/pkg/errors"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/loaders"
)

// runCLI runs the CLI with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { errors.SetHandler(nil) })
	var out, errOut bytes.Buffer
	err = run(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metaloader.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunHelpAndVersion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, "Commands:"},
		{"help flag", []string{"--help"}, "Commands:"},
		{"help word", []string{"help"}, "metaloader render round"},
		{"version", []string{"--version"}, "metaloader version " + Version},
		{"version short", []string{"-v"}, "metaloader version"},
		{"command help", []string{"render", "--help"}, "-sheet FILE"},
		{"command help after name", []string{"preview", "chase", "-h"}, "metaloader preview <loader>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("run(%q) error = %v", tt.args, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("run(%q) output missing %q:\n%s", tt.args, tt.want, out)
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	_, errOut, err := runCLI(t, "frobnicate")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(errOut, `unknown command "frobnicate"`) {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRunConfigFlagErrors(t *testing.T) {
	if _, _, err := runCLI(t, "--config"); err == nil {
		t.Error("expected error for --config without a path")
	}
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, _, err := runCLI(t, "--config", missing, "list"); err == nil {
		t.Error("expected error for a missing config file")
	}
	bad := writeConfig(t, "speed:\n  nosuch: 2\n")
	if _, _, err := runCLI(t, "--config="+bad, "list"); err == nil {
		t.Error("expected error for a speed entry naming no loader")
	}
	badCurve := writeConfig(t, "curve:\n  round: wobble\n")
	if _, _, err := runCLI(t, "--config="+badCurve, "list"); err == nil {
		t.Error("expected error for an unknown curve name")
	}
}

func TestList(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\nspeed:\n  round: 2\ncurve:\n  round: ease_in\n")
	out, _, err := runCLI(t, "--config", cfg, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	names := loaders.Names()
	if len(lines) != len(names) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(names), out)
	}
	for i, name := range names {
		fields := strings.Fields(lines[i])
		if fields[0] != name {
			t.Errorf("line %d names %q, want %q", i, fields[0], name)
		}
		want, wantCurve := "1", "default"
		if name == "round" {
			want, wantCurve = "2", "ease_in"
		}
		if got := fields[len(fields)-1]; got != want {
			t.Errorf("%s speed = %s, want %s", name, got, want)
		}
		if got := fields[len(fields)-3]; got != wantCurve {
			t.Errorf("%s curve = %s, want %s", name, got, wantCurve)
		}
	}

	if _, _, err := runCLI(t, "--config", cfg, "list", "extra"); err == nil {
		t.Error("expected error for list with arguments")
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		args     []string
		wantName string
		wantRest []string
	}{
		{nil, "", nil},
		{[]string{"chase"}, "chase", []string{}},
		{[]string{"chase", "-frames", "3"}, "chase", []string{"-frames", "3"}},
		{[]string{"-frames", "3", "chase"}, "", []string{"-frames", "3", "chase"}},
	}
	for _, tt := range tests {
		name, rest := splitName(tt.args)
		if name != tt.wantName || strings.Join(rest, " ") != strings.Join(tt.wantRest, " ") {
			t.Errorf("splitName(%q) = %q, %q; want %q, %q", tt.args, name, rest, tt.wantName, tt.wantRest)
		}
	}
}

func TestRenderFrames(t *testing.T) {
	l, err := loaders.New("round")
	if err != nil {
		t.Fatal(err)
	}
	imgs, err := renderFrames(l, renderOptions{frames: 4, fps: 10, scale: 0.5})
	if err != nil {
		t.Fatalf("renderFrames: %v", err)
	}
	if len(imgs) != 4 {
		t.Fatalf("got %d frames, want 4", len(imgs))
	}
	for i, img := range imgs {
		if got := img.Bounds().Size(); got != image.Pt(64, 64) {
			t.Errorf("frame %d size = %v, want 64x64", i, got)
		}
	}
	first := imgs[0].(*image.RGBA).Pix
	last := imgs[3].(*image.RGBA).Pix
	if bytes.Equal(first, last) {
		t.Error("frames 0 and 3 are identical; the loader did not move")
	}
	if l.Running() {
		t.Error("loader still running after renderFrames")
	}
}

func TestNewLoaderAppliesConfigCurve(t *testing.T) {
	render := func(curve string) []byte {
		t.Helper()
		env := &Env{Config: config.Default()}
		if curve != "" {
			env.Config.Curve["horizontal"] = curve
		}
		l, err := newLoader(env, "horizontal")
		if err != nil {
			t.Fatal(err)
		}
		imgs, err := renderFrames(l, renderOptions{frames: 3, fps: 10, scale: 1})
		if err != nil {
			t.Fatalf("renderFrames: %v", err)
		}
		return imgs[2].(*image.RGBA).Pix
	}
	eased, configured, linear := render(""), render("accelerate_decelerate"), render("linear")
	if !bytes.Equal(eased, configured) {
		t.Error("naming the default curve changed the frame")
	}
	if bytes.Equal(eased, linear) {
		t.Error("linear curve rendered the same frame as the default")
	}
}

func TestRenderFramesStartFailure(t *testing.T) {
	var h captureHandler
	errors.SetHandler(&h)
	t.Cleanup(func() { errors.SetHandler(nil) })

	cfg := loaders.DefaultRoundConfig()
	cfg.Duration = 0
	if _, err := renderFrames(loaders.NewRound(cfg), renderOptions{frames: 2, fps: 30, scale: 1}); err == nil {
		t.Fatal("expected start error")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames")
	sheet := filepath.Join(dir, "sheet.png")
	cfg := writeConfig(t, "color: \"#ff0000\"\nbackground: \"#000000\"\n")

	out, _, err := runCLI(t, "--config", cfg, "render", "skip",
		"-o", frames, "-sheet", sheet, "-frames", "3", "-columns", "2", "-scale", "2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Wrote 3 frames") || !strings.Contains(out, "Wrote sprite sheet") {
		t.Errorf("output = %q", out)
	}

	entries, err := os.ReadDir(frames)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 || entries[0].Name() != "frame_000.png" {
		t.Errorf("frame files = %v", entries)
	}

	frame := decodePNG(t, filepath.Join(frames, "frame_000.png"))
	fw, fh := frame.Bounds().Dx(), frame.Bounds().Dy()

	img := decodePNG(t, sheet)
	if got, want := img.Bounds().Size(), image.Pt(2*fw, 2*fh); got != want {
		t.Errorf("sheet size = %v, want %v", got, want)
	}
	if !hasRed(frame) {
		t.Error("frame has no pixel in the configured red")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no loader", []string{"render"}},
		{"unknown loader", []string{"render", "nosuch", "-o", "x"}},
		{"zero frames", []string{"render", "round", "-frames", "0"}},
		{"bad flag", []string{"render", "round", "-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tt.args...); err == nil {
				t.Errorf("run(%q) succeeded", tt.args)
			}
		})
	}
}

func TestPixelColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	img.SetRGBA(1, 0, color.RGBA{R: 0x80, A: 0x80}) // half-covered red, premultiplied
	backdrop := colorful.Color{B: 1}

	tests := []struct {
		name string
		x, y int
		want colorful.Color
	}{
		{"opaque", 0, 0, colorful.Color{R: 1}},
		{"half", 1, 0, colorful.Color{R: 0.5, B: 0.5}},
		{"outside", 5, 0, backdrop},
		{"negative", -1, 0, backdrop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelColor(img, tt.x, tt.y, backdrop)
			if !got.AlmostEqualRgb(tt.want) {
				t.Errorf("pixelColor(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBackdropColor(t *testing.T) {
	if got := backdropColor(graphics.ColorTransparent); got != (colorful.Color{}) {
		t.Errorf("transparent backdrop = %v, want black", got)
	}
	if got := backdropColor(graphics.ColorWhite); !got.AlmostEqualRgb(colorful.Color{R: 1, G: 1, B: 1}) {
		t.Errorf("white backdrop = %v", got)
	}
}

func TestFitCanvas(t *testing.T) {
	c := fitCanvas(graphics.Size{Width: 100, Height: 50}, 80, 20, graphics.ColorTransparent)
	// 80 cols and 40 pixel rows: height limits the scale to 0.8.
	if got := c.Image().Bounds().Size(); got != image.Pt(80, 40) {
		t.Errorf("fitCanvas image = %v, want 80x40", got)
	}
}

type captureHandler struct {
	errs []*errors.LoaderError
}

func (h *captureHandler) HandleError(err *errors.LoaderError) { h.errs = append(h.errs, err) }
func (h *captureHandler) HandlePanic(*errors.PanicError)       {}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

// hasRed reports whether any pixel is close to opaque red.
func hasRed(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if r>>8 >= 0xF0 && g>>8 <= 0x10 && bl>>8 <= 0x10 && a>>8 == 0xFF {
				return true
			}
		}
	}
	return false
}
