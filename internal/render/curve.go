package render

import "math"

// extentEpsilon absorbs float error so that e.g. 0.8*14 lands on 11 and 1.0*n
// lands on n.
const extentEpsilon = 1e-9

// Curve maps a value in [Min, Max] onto the pixel range [Start, End] through
// a power-law response. K=1 is linear, K>1 compresses low values, K<1
// expands them.
type Curve struct {
	K        float64
	Min, Max float64
	Start    int
	End      int
}

// Normalize clamps v into [Min, Max] and rescales it to [0, 1]. A degenerate
// range normalizes everything to 0.
func (c Curve) Normalize(v float64) float64 {
	if c.Max <= c.Min || math.IsNaN(v) {
		return 0
	}
	n := (v - c.Min) / (c.Max - c.Min)
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	default:
		return n
	}
}

// Response returns Normalize(v)^K.
func (c Curve) Response(v float64) float64 {
	k := c.K
	if k <= 0 {
		k = 1
	}
	return math.Pow(c.Normalize(v), k)
}

// Map returns the pixel coordinate for v, interpolated between Start and End.
func (c Curve) Map(v float64) float64 {
	return float64(c.Start) + c.Response(v)*float64(c.End-c.Start)
}

// Length returns the number of cells between Start and End.
func (c Curve) Length() int {
	if c.End > c.Start {
		return c.End - c.Start
	}
	return c.Start - c.End
}

// Extent returns how many cells v fills, counted from Start toward End.
func (c Curve) Extent(v float64) int {
	n := int(math.Floor(c.Response(v)*float64(c.Length()) + extentEpsilon))
	if n < 0 {
		return 0
	}
	if n > c.Length() {
		return c.Length()
	}
	return n
}

// sigmoid is the brightness falloff along a bar: cells near the baseline are
// dim and cells toward the far end approach full intensity. steepness 0
// disables falloff.
func sigmoid(distance, length int, steepness float64) float64 {
	if steepness == 0 || length <= 0 {
		return 1
	}
	x := float64(distance) / float64(length)
	return 1 / (1 + math.Exp(-steepness*(x-0.5)))
}

// intensity returns the gray level of the cell at distance from the baseline
// of a bar whose response is resp.
func intensity(resp float64, distance, length int, steepness float64) uint8 {
	v := math.Round(255 * resp * sigmoid(distance, length, steepness))
	if v < 1 {
		return 1
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
