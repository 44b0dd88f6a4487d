package render

// drawPlot draws one column per sample, oldest at start_x. Only the newest
// samples that fit are shown; a short history leaves the remaining columns
// dark.
func (w Widget) drawPlot(c *Canvas, samples []float64, dir int) {
	if len(samples) == 0 {
		return
	}
	if len(samples) > w.columns {
		samples = samples[len(samples)-w.columns:]
	}

	curve := w.curve
	if curve.Max == 0 {
		curve.Max = windowMax(samples)
		if curve.Max <= curve.Min {
			return
		}
	}

	for i, v := range samples {
		w.drawColumn(c, curve, w.x0+i, v, dir)
	}
}

func windowMax(samples []float64) float64 {
	m := samples[0]
	for _, v := range samples[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
