package render

import "github.com/rileyhilliard/ledmon/internal/history"

// Frame is one rendered tick. A panel with no widgets is nil and is not sent.
type Frame struct {
	Left  *Canvas
	Right *Canvas
}

// Empty reports whether neither panel is present.
func (f Frame) Empty() bool {
	return f.Left == nil && f.Right == nil
}

// Scale applies a brightness level to every present panel.
func (f Frame) Scale(level uint8) {
	for _, c := range []*Canvas{f.Left, f.Right} {
		if c != nil {
			c.Scale(level)
		}
	}
}

// Compositor owns the panel canvases and the ordered widget groups.
type Compositor struct {
	size  Size
	left  []Widget
	right []Widget

	leftCanvas  *Canvas
	rightCanvas *Canvas
}

// NewCompositor creates a compositor drawing left and right in list order.
func NewCompositor(size Size, left, right []Widget) *Compositor {
	c := &Compositor{
		size:  size,
		left:  append([]Widget(nil), left...),
		right: append([]Widget(nil), right...),
	}
	if len(left) > 0 {
		c.leftCanvas = NewCanvas(size)
	}
	if len(right) > 0 {
		c.rightCanvas = NewCanvas(size)
	}
	return c
}

// Size returns the panel size.
func (c *Compositor) Size() Size {
	return c.size
}

// Widgets returns the number of widgets in each group.
func (c *Compositor) Widgets() (left, right int) {
	return len(c.left), len(c.right)
}

// Render clears the panels, draws the left group then the right group, and
// returns copies the caller may keep. Overlapping widgets resolve by draw
// order: the later widget wins.
func (c *Compositor) Render(r history.Reader) Frame {
	var f Frame
	if c.leftCanvas != nil {
		f.Left = drawGroup(c.leftCanvas, c.left, r)
	}
	if c.rightCanvas != nil {
		f.Right = drawGroup(c.rightCanvas, c.right, r)
	}
	return f
}

func drawGroup(canvas *Canvas, widgets []Widget, r history.Reader) *Canvas {
	canvas.Clear()
	for _, w := range widgets {
		w.Draw(canvas, r)
	}
	return canvas.Clone()
}
