package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvas_SetIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(DefaultSize)

	c.Set(-1, 0, 255)
	c.Set(0, -1, 255)
	c.Set(DefaultWidth, 0, 255)
	c.Set(0, DefaultHeight, 255)
	assert.Zero(t, c.Lit())

	c.Set(8, 33, 42)
	assert.Equal(t, uint8(42), c.At(8, 33))
	assert.Equal(t, uint8(0), c.At(9, 33))
	assert.Equal(t, 1, c.Lit())
}

func TestCanvas_Scale(t *testing.T) {
	tests := []struct {
		name  string
		pixel uint8
		level uint8
		want  uint8
	}{
		{"full level is identity", 200, 255, 200},
		{"half level", 255, 128, 128},
		{"dim pixel stays lit", 1, 10, 1},
		{"zero level turns pixels off", 255, 0, 0},
		{"off pixel stays off", 0, 128, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(Size{W: 1, H: 1})
			c.Set(0, 0, tt.pixel)
			c.Scale(tt.level)
			assert.Equal(t, tt.want, c.At(0, 0))
		})
	}
}

func TestCanvas_CloneAndClear(t *testing.T) {
	c := NewCanvas(DefaultSize)
	c.Set(3, 4, 99)

	cp := c.Clone()
	c.Clear()

	assert.Zero(t, c.Lit())
	assert.Equal(t, uint8(99), cp.At(3, 4))
	assert.Equal(t, DefaultSize, cp.Size())
}

func TestCanvas_Column(t *testing.T) {
	c := NewCanvas(Size{W: 2, H: 3})
	c.Set(1, 0, 5)
	c.Set(1, 2, 7)

	assert.Equal(t, []uint8{5, 0, 7}, c.Column(1))
	assert.Equal(t, []uint8{0, 0, 0}, c.Column(0))
}
