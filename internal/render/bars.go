package render

import "github.com/rileyhilliard/ledmon/internal/history"

// drawBar fills the bar from its baseline in proportion to v.
func (w Widget) drawBar(c *Canvas, v float64) {
	resp := w.curve.Response(v)
	n := w.curve.Extent(v)
	length := w.curve.Length()

	for i := 0; i < n; i++ {
		pos := w.start + i
		if w.end < w.start {
			pos = w.start - 1 - i
		}
		val := intensity(resp, i, length, w.falloff)
		for cross := w.cross0; cross < w.cross1; cross++ {
			if w.orientation == Horizontal {
				c.Set(pos, cross, val)
			} else {
				c.Set(cross, pos, val)
			}
		}
	}
}

// drawColumn draws one column growing away from the mid point: upward when
// dir < 0, downward otherwise.
func (w Widget) drawColumn(c *Canvas, curve Curve, x int, v float64, dir int) {
	resp := curve.Response(v)
	n := curve.Extent(v)
	for i := 0; i < n; i++ {
		y := w.midPoint + i
		if dir < 0 {
			y = w.midPoint - 1 - i
		}
		c.Set(x, y, intensity(resp, i, w.maxHeight, w.falloff))
	}
}

// drawCores gives each core one column: the first row of columns grows up
// from the mid point, the second row grows down. Cores beyond two rows are
// not shown.
func (w Widget) drawCores(c *Canvas, r history.Reader) {
	for i, k := range coreKeys(r) {
		if i >= 2*w.columns {
			return
		}
		v, ok := r.Latest(k)
		if !ok {
			continue
		}
		dir := -1
		if i >= w.columns {
			dir = 1
		}
		w.drawColumn(c, w.curve, w.x0+i%w.columns, v, dir)
	}
}
