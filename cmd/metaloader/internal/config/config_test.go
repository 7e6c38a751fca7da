package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    graphics.Color
		wantErr bool
	}{
		{in: "#ffffff", want: graphics.ColorWhite},
		{in: "ff0000", want: graphics.RGB(255, 0, 0)},
		{in: "#0f0", want: graphics.RGB(0, 255, 0)},
		{in: "#00000080", want: graphics.RGBA(0, 0, 0, 0x80)},
		{in: "Transparent", want: graphics.ColorTransparent},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "#000000zz", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
		check   func(t *testing.T, r *Resolved)
	}{
		{
			name: "nil uses defaults",
			check: func(t *testing.T, r *Resolved) {
				if r.FPS != 60 || r.Scale != 1 || r.Color != graphics.ColorWhite || r.SpeedFor("round") != 1 {
					t.Errorf("defaults = %+v", r)
				}
			},
		},
		{
			name: "full file",
			cfg: &Config{
				Version:    "1.2.0",
				Color:      "#336699",
				Background: "#000000",
				FPS:        30,
				Scale:      2,
				Speed:      map[string]float64{"round": 1.5},
			},
			check: func(t *testing.T, r *Resolved) {
				if r.Color != graphics.RGB(0x33, 0x66, 0x99) || r.Background != graphics.ColorBlack {
					t.Errorf("colors = %v %v", r.Color, r.Background)
				}
				if r.FPS != 30 || r.Scale != 2 {
					t.Errorf("fps/scale = %v/%v", r.FPS, r.Scale)
				}
				if r.SpeedFor("round") != 1.5 || r.SpeedFor("mix") != 1 {
					t.Errorf("speeds = %v", r.Speed)
				}
			},
		},
		{name: "prefixed version", cfg: &Config{Version: "v1.0.3"}},
		{name: "future major", cfg: &Config{Version: "2.0.0"}, wantErr: "not supported"},
		{name: "garbage version", cfg: &Config{Version: "one"}, wantErr: "not a semantic version"},
		{name: "bad color", cfg: &Config{Color: "#nothex"}, wantErr: "color"},
		{name: "negative fps", cfg: &Config{FPS: -1}, wantErr: "fps"},
		{name: "negative scale", cfg: &Config{Scale: -2}, wantErr: "scale"},
		{name: "unknown loader speed", cfg: &Config{Speed: map[string]float64{"spiral": 2}}, wantErr: "unknown loader"},
		{name: "zero speed", cfg: &Config{Speed: map[string]float64{"skip": 0}}, wantErr: "must be positive"},
		{
			name: "curves",
			cfg:  &Config{Curve: map[string]string{"round": "Ease-In-Out", "skip": "linear"}},
			check: func(t *testing.T, r *Resolved) {
				if r.Curve["round"] != "ease_in_out" {
					t.Errorf("round curve = %q, want ease_in_out", r.Curve["round"])
				}
				if got := r.CurveFor("skip"); got == nil || got(0.25) != 0.25 {
					t.Error("skip curve is not linear")
				}
				if got := r.CurveFor("round"); got == nil || got(0.5) != animation.EaseInOut(0.5) {
					t.Error("round curve is not ease_in_out")
				}
				if r.CurveFor("chase") != nil {
					t.Error("chase has a curve it was not given")
				}
			},
		},
		{name: "unknown loader curve", cfg: &Config{Curve: map[string]string{"spiral": "ease"}}, wantErr: "unknown loader"},
		{name: "unknown curve", cfg: &Config{Curve: map[string]string{"mix": "bounce"}}, wantErr: `unknown curve "bounce"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Resolve(tt.cfg, "")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, r)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOptional(dir)
	if err != nil || cfg == nil || cfg.Version != "" {
		t.Fatalf("LoadOptional(empty dir) = %+v, %v", cfg, err)
	}

	data := "version: 1.0.0\ncolor: \"#ff8800\"\nspeed:\n  chase: 2\ncurve:\n  chase: ease_out\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Version != "1.0.0" || cfg.Color != "#ff8800" || cfg.Speed["chase"] != 2 || cfg.Curve["chase"] != "ease_out" {
		t.Errorf("parsed %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("fps: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptional(dir); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("malformed yaml error = %v", err)
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, FileName)
	if err := os.WriteFile(want, []byte("fps: 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if got != want {
		t.Errorf("FindConfig() = %q, want %q", got, want)
	}

	r, err := Discover(got)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if r.FPS != 24 || r.Path != want {
		t.Errorf("Discover() = %+v", r)
	}
}

func TestFindConfigMissing(t *testing.T) {
	_, err := FindConfig(t.TempDir())
	// A metaloader.yaml above the temp dir would make this pass vacuously.
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Errorf("FindConfig() error = %v, want ErrNotExist", err)
	}
}
