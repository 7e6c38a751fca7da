package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/loaders"
)

// FileName is the config file looked up by FindConfig.
const FileName = "metaloader.yaml"

// SchemaMajor is the only config schema major version understood.
const SchemaMajor = "v1"

// Config represents the optional metaloader.yaml file.
type Config struct {
	Version    string             `yaml:"version,omitempty"`
	Color      string             `yaml:"color,omitempty"`
	Background string             `yaml:"background,omitempty"`
	FPS        float64            `yaml:"fps,omitempty"`
	Scale      float64            `yaml:"scale,omitempty"`
	Speed      map[string]float64 `yaml:"speed,omitempty"`
	// Curve names the easing curve per loader, e.g. "ease_in_out".
	Curve map[string]string `yaml:"curve,omitempty"`
}

// Resolved contains validated configuration values with defaults applied.
type Resolved struct {
	// Path is the file the values came from; empty when none was found.
	Path       string
	Color      graphics.Color
	Background graphics.Color
	FPS        float64
	Scale      float64
	Speed      map[string]float64
	// Curve holds the canonical curve name per loader.
	Curve map[string]string
}

// SpeedFor returns the speed multiplier for the named loader.
func (r *Resolved) SpeedFor(name string) float64 {
	if s, ok := r.Speed[name]; ok {
		return s
	}
	return 1
}

// CurveFor returns the configured curve for the named loader, or nil to
// keep the loader's own.
func (r *Resolved) CurveFor(name string) func(float64) float64 {
	curve, _ := animation.CurveNamed(r.Curve[name])
	return curve
}

// Default returns the values used when no file is present.
func Default() *Resolved {
	return &Resolved{
		Color:      loaders.DefaultColor,
		Background: graphics.ColorTransparent,
		FPS:        60,
		Scale:      1,
		Speed:      map[string]float64{},
		Curve:      map[string]string{},
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional reads metaloader.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Resolve validates cfg and fills in defaults. path is recorded as the
// origin of the values.
func Resolve(cfg *Config, path string) (*Resolved, error) {
	r := Default()
	r.Path = path
	if cfg == nil {
		return r, nil
	}

	if v := strings.TrimSpace(cfg.Version); v != "" {
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		if !semver.IsValid(v) {
			return nil, fmt.Errorf("version %q is not a semantic version", cfg.Version)
		}
		if semver.Major(v) != SchemaMajor {
			return nil, fmt.Errorf("version %q is not supported (want %s.x)", cfg.Version, SchemaMajor)
		}
	}

	var err error
	if cfg.Color != "" {
		if r.Color, err = ParseColor(cfg.Color); err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
	}
	if cfg.Background != "" {
		if r.Background, err = ParseColor(cfg.Background); err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
	}

	switch {
	case cfg.FPS < 0:
		return nil, fmt.Errorf("fps must be positive (got %v)", cfg.FPS)
	case cfg.FPS > 0:
		r.FPS = cfg.FPS
	}
	switch {
	case cfg.Scale < 0:
		return nil, fmt.Errorf("scale must be positive (got %v)", cfg.Scale)
	case cfg.Scale > 0:
		r.Scale = cfg.Scale
	}

	known := loaders.Names()
	for name, speed := range cfg.Speed {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("speed: unknown loader %q", name)
		}
		if speed <= 0 {
			return nil, fmt.Errorf("speed.%s must be positive (got %v)", name, speed)
		}
		r.Speed[name] = speed
	}
	for name, curve := range cfg.Curve {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("curve: unknown loader %q", name)
		}
		if _, ok := animation.CurveNamed(curve); !ok {
			return nil, fmt.Errorf("curve.%s: unknown curve %q (want one of %s)",
				name, curve, strings.Join(animation.CurveNames(), ", "))
		}
		r.Curve[name] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(curve)), "-", "_")
	}
	return r, nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa", or the word
// "transparent".
func ParseColor(s string) (graphics.Color, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "transparent") {
		return graphics.ColorTransparent, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	switch len(s) {
	case 4, 7, 9:
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
	alpha := uint8(0xFF)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid alpha in %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return graphics.RGBA(r, g, b, alpha), nil
}

// FindConfig walks up from dir looking for metaloader.yaml. It returns
// os.ErrNotExist when no directory up to the root has one.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found: %w", FileName, os.ErrNotExist)
		}
		dir = parent
	}
}

// Discover resolves the config at explicit, or the nearest metaloader.yaml
// above the working directory, or defaults when there is none.
func Discover(explicit string) (*Resolved, error) {
	path := explicit
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path, err = FindConfig(wd)
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		if err != nil {
			return nil, err
		}
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Resolve(cfg, path)
}
