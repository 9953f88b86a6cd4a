package hal

import (
	"fmt"
	"image"

	"nxui/blocklinear"
)

// Frame is a queued buffer as seen by a presenter. Data is in block-linear
// layout.
type Frame struct {
	Data            []byte
	Width           uint32
	Height          uint32
	Stride          uint32
	BlockHeightLog2 uint32
	Format          ColorFormat
}

// Linear decodes the frame into pitch-linear layout, reusing dst when it is
// large enough.
func (f Frame) Linear(dst []byte) ([]byte, error) {
	n := blocklinear.Size(f.Stride, f.Height, f.BlockHeightLog2)
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	if err := blocklinear.Decode(dst, f.Data, f.Stride, f.Height, f.BlockHeightLog2); err != nil {
		return dst, fmt.Errorf("decode frame: %w", err)
	}
	return dst, nil
}

// CopyRGBA copies the visible pixels of a pitch-linear frame into img.
// The display has no stored alpha, so every pixel is written opaque.
func (f Frame) CopyRGBA(img *image.RGBA, linear []byte) {
	if f.Format != ColorFormatRGBA8888 {
		return
	}
	b := img.Bounds()
	w := min(b.Dx(), int(f.Width))
	h := min(b.Dy(), int(f.Height))
	for y := 0; y < h; y++ {
		src := linear[y*int(f.Stride) : y*int(f.Stride)+w*4]
		dst := img.Pix[y*img.Stride : y*img.Stride+w*4]
		copy(dst, src)
		for i := 3; i < len(dst); i += 4 {
			dst[i] = 0xFF
		}
	}
}
