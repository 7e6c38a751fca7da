package testing

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-drift/metaloader/pkg/graphics"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Circle is a DrawCircle call as seen by a RecordingCanvas, with the
// current translation applied.
type Circle struct {
	Center graphics.Offset
	Radius float64
	Color  graphics.Color
}

// RecordingCanvas implements graphics.Canvas and records every call as a
// DisplayOp. Coordinates in the serialized ops are as passed by the caller;
// Circles additionally reports them in canvas space.
type RecordingCanvas struct {
	ops     []DisplayOp
	circles []Circle
	paths   []*graphics.Path
	size    graphics.Size

	origin graphics.Offset
	stack  []graphics.Offset
}

// NewRecordingCanvas returns an empty canvas of the given size.
func NewRecordingCanvas(size graphics.Size) *RecordingCanvas {
	return &RecordingCanvas{size: size}
}

func (c *RecordingCanvas) Save() {
	c.stack = append(c.stack, c.origin)
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *RecordingCanvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.origin = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.origin = c.origin.Add(graphics.Offset{X: dx, Y: dy})
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: sortedMap("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *RecordingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: sortedMap("color", serializeColor(color)),
	})
}

func (c *RecordingCanvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	c.circles = append(c.circles, Circle{
		Center: center.Add(c.origin),
		Radius: radius,
		Color:  paint.Color,
	})
	c.ops = append(c.ops, DisplayOp{
		Op: "drawCircle",
		Params: sortedMap(
			"cx", round2(center.X),
			"cy", round2(center.Y),
			"radius", round2(radius),
			"color", serializeColor(paint.Color),
		),
	})
}

func (c *RecordingCanvas) DrawPath(path *graphics.Path, paint graphics.Paint) {
	clone := &graphics.Path{Commands: append([]graphics.PathCommand(nil), path.Commands...)}
	c.paths = append(c.paths, clone)
	c.ops = append(c.ops, DisplayOp{
		Op: "drawPath",
		Params: sortedMap(
			"commands", len(path.Commands),
			"closed", path.IsClosed(),
			"color", serializeColor(paint.Color),
		),
	})
}

func (c *RecordingCanvas) Size() graphics.Size {
	return c.size
}

// Ops returns the recorded operations in call order.
func (c *RecordingCanvas) Ops() []DisplayOp {
	return c.ops
}

// Count returns how many operations named op were recorded.
func (c *RecordingCanvas) Count(op string) int {
	n := 0
	for _, o := range c.ops {
		if o.Op == op {
			n++
		}
	}
	return n
}

// Circles returns every drawn circle in canvas coordinates.
func (c *RecordingCanvas) Circles() []Circle {
	return c.circles
}

// Paths returns copies of every drawn path, untranslated.
func (c *RecordingCanvas) Paths() []*graphics.Path {
	return c.paths
}

// Reset discards everything recorded so far.
func (c *RecordingCanvas) Reset() {
	c.ops = nil
	c.circles = nil
	c.paths = nil
	c.origin = graphics.Offset{}
	c.stack = nil
}

// Serialize replays a DisplayList through a RecordingCanvas.
func Serialize(dl *graphics.DisplayList) []DisplayOp {
	canvas := NewRecordingCanvas(dl.Size())
	dl.Paint(canvas)
	return canvas.ops
}

// --- Serialization helpers ---

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs. JSON encoding
// emits map keys in sorted order, so snapshots are stable.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String formats the op as "name key=value ..." with keys sorted.
func (o DisplayOp) String() string {
	s := o.Op
	for _, k := range sortedKeys(o.Params) {
		s += fmt.Sprintf(" %s=%v", k, o.Params[k])
	}
	return s
}
