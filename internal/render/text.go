package render

import "strings"

// shades maps intensity bands to glyphs, darkest first.
var shades = []rune{' ', '░', '▒', '▓', '█'}

// Shade returns the glyph for one pixel intensity.
func Shade(v uint8) rune {
	if v == 0 {
		return shades[0]
	}
	// 1..255 spread over the four lit glyphs
	idx := 1 + int(v-1)*(len(shades)-1)/255
	return shades[idx]
}

// Text renders a panel as rows of shade glyphs, two glyphs per pixel so LEDs
// look roughly square in a terminal.
func Text(c *Canvas) string {
	size := c.Size()
	var b strings.Builder
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			g := Shade(c.At(x, y))
			b.WriteRune(g)
			b.WriteRune(g)
		}
		if y < size.H-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// SideBySide joins rendered panels line by line with gap spaces between them.
// Missing panels are rendered blank.
func SideBySide(size Size, gap int, panels ...*Canvas) string {
	blank := strings.Repeat(" ", size.W*2)
	cols := make([][]string, len(panels))
	for i, p := range panels {
		if p == nil {
			cols[i] = nil
			continue
		}
		cols[i] = strings.Split(Text(p), "\n")
	}

	sep := strings.Repeat(" ", gap)
	var b strings.Builder
	for y := 0; y < size.H; y++ {
		for i := range panels {
			if i > 0 {
				b.WriteString(sep)
			}
			if cols[i] == nil || y >= len(cols[i]) {
				b.WriteString(blank)
			} else {
				b.WriteString(cols[i][y])
			}
		}
		if y < size.H-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
