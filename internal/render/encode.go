package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
)

// EncodePNG encodes a panel as an 8-bit grayscale PNG.
func EncodePNG(c *Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, c.Image(), imaging.PNG); err != nil {
		return nil, lmerrors.WrapWithCode(err, lmerrors.ErrRender, "Failed to encode frame as PNG", "")
	}
	return buf.Bytes(), nil
}

// EncodedFrame holds the PNG bytes of each present panel.
type EncodedFrame struct {
	Left  []byte
	Right []byte
}

// Encode encodes every present panel of f.
func (f Frame) Encode() (EncodedFrame, error) {
	var out EncodedFrame
	var err error
	if f.Left != nil {
		if out.Left, err = EncodePNG(f.Left); err != nil {
			return EncodedFrame{}, err
		}
	}
	if f.Right != nil {
		if out.Right, err = EncodePNG(f.Right); err != nil {
			return EncodedFrame{}, err
		}
	}
	return out, nil
}

// Upscale enlarges a panel by an integer factor with nearest-neighbour
// sampling, keeping every LED a crisp square.
func Upscale(c *Canvas, factor int) (image.Image, error) {
	if factor < 1 {
		return nil, lmerrors.New(lmerrors.ErrRender,
			fmt.Sprintf("Invalid scale factor %d", factor),
			"Use a scale of 1 or more")
	}
	if factor == 1 {
		return c.Image(), nil
	}
	size := c.Size()
	return imaging.Resize(c.Image(), size.W*factor, size.H*factor, imaging.NearestNeighbor), nil
}

// SavePNG writes a panel to path, upscaled by factor.
func SavePNG(c *Canvas, path string, factor int) error {
	img, err := Upscale(c, factor)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return lmerrors.WrapWithCode(err, lmerrors.ErrRender,
			fmt.Sprintf("Failed to write %s", path),
			"Check that the output directory exists and is writable")
	}
	return nil
}
