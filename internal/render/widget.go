package render

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/ledmon/internal/history"
)

// Kind is the closed set of widget variants.
type Kind int

const (
	KindCPU Kind = iota
	KindAverageCPU
	KindMemory
	KindTemperature
	KindBattery
	KindNetwork
	KindDisk
)

var kindNames = map[Kind]string{
	KindCPU:         "cpu",
	KindAverageCPU:  "average_cpu",
	KindMemory:      "memory",
	KindTemperature: "temperature",
	KindBattery:     "battery",
	KindNetwork:     "network",
	KindDisk:        "disk",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// KindNames lists the config names of every widget kind.
func KindNames() []string {
	out := make([]string, 0, len(kindNames))
	for k := KindCPU; k <= KindDisk; k++ {
		out = append(out, kindNames[k])
	}
	return out
}

// ParseKind resolves a config name (case-insensitive; "mem" and "avg_cpu" are
// accepted aliases).
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mem":
		return KindMemory, true
	case "avg_cpu", "averagecpu":
		return KindAverageCPU, true
	case "temp":
		return KindTemperature, true
	}
	for k, name := range kindNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, true
		}
	}
	return 0, false
}

func (k Kind) isBar() bool {
	switch k {
	case KindAverageCPU, KindMemory, KindTemperature, KindBattery:
		return true
	}
	return false
}

func (k Kind) isPlot() bool {
	return k == KindNetwork || k == KindDisk
}

// Orientation is the axis a bar grows along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Default widget parameters.
const (
	DefaultK         = 1.0
	DefaultFalloff   = 6.0
	DefaultMaxValue  = 100.0
	DefaultThickness = 1
)

// Spec is an unvalidated widget description. Nil fields take defaults.
type Spec struct {
	Kind        string
	Source      string
	MidPoint    *int
	MaxHeight   *int
	StartX      *int
	StartY      *int
	EndX        *int
	EndY        *int
	Thickness   *int
	K           *float64
	MinValue    *float64
	MaxValue    *float64
	Falloff     *float64
	Orientation string
}

// GeometryError reports the spec field that made a widget invalid.
type GeometryError struct {
	Field   string
	Problem string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Problem)
}

func invalid(field, format string, args ...interface{}) error {
	return &GeometryError{Field: field, Problem: fmt.Sprintf(format, args...)}
}

// Widget is a validated, immutable widget. Its geometry is guaranteed to lie
// inside the canvas it was built for.
type Widget struct {
	kind        Kind
	source      string
	curve       Curve
	falloff     float64
	orientation Orientation

	// bars: cells [cross0, cross1) across the fill axis, filled from start toward end
	cross0, cross1 int
	start, end     int

	// cpu and plots: columns [x0, x0+columns) around midPoint
	midPoint, maxHeight int
	x0, columns         int
}

// Kind returns the widget variant.
func (w Widget) Kind() Kind { return w.kind }

// Source returns the series group the widget reads.
func (w Widget) Source() string { return w.source }

// Bounds returns the canvas rectangle the widget may write to, as
// [x0, x1) × [y0, y1).
func (w Widget) Bounds() (x0, y0, x1, y1 int) {
	switch {
	case w.kind.isBar():
		lo, hi := w.start, w.end
		if lo > hi {
			lo, hi = hi, lo
		}
		if w.orientation == Horizontal {
			return lo, w.cross0, hi, w.cross1
		}
		return w.cross0, lo, w.cross1, hi
	default:
		return w.x0, w.midPoint - w.maxHeight, w.x0 + w.columns, w.midPoint + w.maxHeight
	}
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// NewWidget validates spec against a canvas of the given size. historyCap is
// the number of samples each series retains; it bounds the default plot width.
func NewWidget(spec Spec, size Size, historyCap int) (Widget, error) {
	kind, ok := ParseKind(spec.Kind)
	if !ok {
		return Widget{}, invalid("kind", "unknown widget kind %q (expected one of %s)",
			spec.Kind, strings.Join(KindNames(), ", "))
	}

	w := Widget{
		kind:    kind,
		source:  spec.Source,
		falloff: floatOr(spec.Falloff, DefaultFalloff),
	}
	w.curve.K = floatOr(spec.K, DefaultK)
	w.curve.Min = floatOr(spec.MinValue, 0)
	if w.curve.K <= 0 {
		return Widget{}, invalid("k", "must be positive, got %g", w.curve.K)
	}
	if w.falloff < 0 {
		return Widget{}, invalid("falloff", "must not be negative, got %g", w.falloff)
	}

	for _, f := range []struct {
		name string
		v    *int
	}{
		{"mid_point", spec.MidPoint}, {"max_height", spec.MaxHeight},
		{"start_x", spec.StartX}, {"start_y", spec.StartY},
		{"end_x", spec.EndX}, {"end_y", spec.EndY},
	} {
		if f.v != nil && *f.v < 0 {
			return Widget{}, invalid(f.name, "must not be negative, got %d", *f.v)
		}
	}

	var err error
	switch {
	case kind.isBar():
		err = w.initBar(spec, size)
	case kind == KindCPU:
		err = w.initCPU(spec, size)
	default:
		err = w.initPlot(spec, size, historyCap)
	}
	if err != nil {
		return Widget{}, err
	}
	return w, nil
}

func (w *Widget) initBar(spec Spec, size Size) error {
	w.curve.Max = floatOr(spec.MaxValue, DefaultMaxValue)
	if w.curve.Max <= w.curve.Min {
		return invalid("max_value", "must be greater than min_value (%g), got %g", w.curve.Min, w.curve.Max)
	}

	switch strings.ToLower(spec.Orientation) {
	case "", "vertical":
		w.orientation = Vertical
	case "horizontal":
		w.orientation = Horizontal
	default:
		return invalid("orientation", "must be vertical or horizontal, got %q", spec.Orientation)
	}

	thickness := DefaultThickness
	if w.kind == KindAverageCPU {
		thickness = 2
	}
	thickness = intOr(spec.Thickness, thickness)
	if thickness < 1 {
		return invalid("thickness", "must be at least 1, got %d", thickness)
	}

	// fill axis and cross axis, named for a vertical bar
	startName, endName, crossName := "start_y", "end_y", "start_x"
	startP, endP, crossP := spec.StartY, spec.EndY, spec.StartX
	fillLimit, crossLimit := size.H, size.W
	if w.orientation == Horizontal {
		startName, endName, crossName = "start_x", "end_x", "start_y"
		startP, endP, crossP = spec.StartX, spec.EndX, spec.StartY
		fillLimit, crossLimit = size.W, size.H
	}

	w.cross0 = intOr(crossP, 0)
	w.cross1 = w.cross0 + thickness
	if w.cross1 > crossLimit {
		return invalid(crossName, "bar spans %d..%d but the canvas is %d wide on that axis", w.cross0, w.cross1, crossLimit)
	}

	w.start = intOr(startP, 0)
	if w.start > fillLimit {
		return invalid(startName, "must be at most %d, got %d", fillLimit, w.start)
	}
	switch {
	case endP != nil:
		w.end = *endP
	case spec.MaxHeight != nil:
		w.end = w.start + *spec.MaxHeight
	default:
		return invalid("max_height", "either max_height or %s is required", endName)
	}
	if w.end == w.start {
		return invalid(endName, "bar has zero length (%s = %s = %d)", startName, endName, w.start)
	}
	if w.end > fillLimit {
		return invalid(endName, "bar ends at %d, beyond the canvas edge %d", w.end, fillLimit)
	}

	w.curve.Start, w.curve.End = w.start, w.end
	return nil
}

func (w *Widget) initMidPoint(spec Spec, size Size) error {
	if spec.MidPoint == nil {
		return invalid("mid_point", "is required for %s widgets", w.kind)
	}
	if spec.MaxHeight == nil || *spec.MaxHeight < 1 {
		return invalid("max_height", "must be at least 1 for %s widgets", w.kind)
	}
	w.midPoint, w.maxHeight = *spec.MidPoint, *spec.MaxHeight
	if w.midPoint < w.maxHeight {
		return invalid("mid_point", "must be at least max_height (%d), got %d", w.maxHeight, w.midPoint)
	}
	if w.midPoint+w.maxHeight > size.H {
		return invalid("max_height", "mid_point + max_height = %d exceeds the canvas height %d",
			w.midPoint+w.maxHeight, size.H)
	}
	w.curve.Start, w.curve.End = 0, w.maxHeight
	return nil
}

func (w *Widget) initColumns(spec Spec, size Size, defaultEnd int) error {
	w.x0 = intOr(spec.StartX, 0)
	end := intOr(spec.EndX, defaultEnd)
	if end > size.W {
		return invalid("end_x", "must be at most %d, got %d", size.W, end)
	}
	if end <= w.x0 {
		return invalid("end_x", "must be greater than start_x (%d), got %d", w.x0, end)
	}
	w.columns = end - w.x0
	return nil
}

func (w *Widget) initCPU(spec Spec, size Size) error {
	w.curve.Max = floatOr(spec.MaxValue, DefaultMaxValue)
	if w.curve.Max <= w.curve.Min {
		return invalid("max_value", "must be greater than min_value (%g), got %g", w.curve.Min, w.curve.Max)
	}
	if err := w.initMidPoint(spec, size); err != nil {
		return err
	}
	return w.initColumns(spec, size, size.W)
}

func (w *Widget) initPlot(spec Spec, size Size, historyCap int) error {
	// 0 means each series is scaled to its own window maximum
	w.curve.Max = floatOr(spec.MaxValue, 0)
	if w.curve.Max != 0 && w.curve.Max <= w.curve.Min {
		return invalid("max_value", "must be 0 (auto) or greater than min_value (%g), got %g", w.curve.Min, w.curve.Max)
	}
	if err := w.initMidPoint(spec, size); err != nil {
		return err
	}
	start := intOr(spec.StartX, 0)
	defaultEnd := size.W
	if historyCap > 0 && start+historyCap < defaultEnd {
		defaultEnd = start + historyCap
	}
	return w.initColumns(spec, size, defaultEnd)
}

// Draw renders the widget from the latest collected state. Series that have
// not been collected yet draw nothing.
func (w Widget) Draw(c *Canvas, r history.Reader) {
	switch w.kind {
	case KindMemory:
		w.drawLatest(c, r, history.K(history.CategoryMemory, ""))
	case KindBattery:
		w.drawLatest(c, r, history.K(history.CategoryBattery, ""))
	case KindTemperature:
		w.drawLatest(c, r, history.K(history.CategoryTemp, w.source))
	case KindAverageCPU:
		if v, ok := averageCPU(r); ok {
			w.drawBar(c, v)
		}
	case KindCPU:
		w.drawCores(c, r)
	case KindNetwork:
		w.drawPlot(c, r.Snapshot(history.K(history.CategoryNetRx, w.source)), -1)
		w.drawPlot(c, r.Snapshot(history.K(history.CategoryNetTx, w.source)), 1)
	case KindDisk:
		w.drawPlot(c, r.Snapshot(history.K(history.CategoryDiskRead, w.source)), -1)
		w.drawPlot(c, r.Snapshot(history.K(history.CategoryDiskWrite, w.source)), 1)
	}
}

func (w Widget) drawLatest(c *Canvas, r history.Reader, key history.Key) {
	if v, ok := r.Latest(key); ok {
		w.drawBar(c, v)
	}
}

// averageCPU prefers the published all-core series and falls back to the
// mean of the latest per-core values.
func averageCPU(r history.Reader) (float64, bool) {
	if v, ok := r.Latest(history.K(history.CategoryCPU, history.CPUAverage)); ok {
		return v, true
	}
	var sum float64
	var n int
	for _, k := range coreKeys(r) {
		if v, ok := r.Latest(k); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func coreKeys(r history.Reader) []history.Key {
	var out []history.Key
	for _, k := range r.Keys(history.CategoryCPU) {
		if k.Name != history.CPUAverage {
			out = append(out, k)
		}
	}
	return out
}
