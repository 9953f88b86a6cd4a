package hal

import (
	"image"
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
)

// DisplayerPresenter presents frames on a tinygo display driver, pixel by
// pixel, followed by a Display call.
type DisplayerPresenter struct {
	d       drivers.Displayer
	scratch []byte
}

func NewDisplayerPresenter(d drivers.Displayer) *DisplayerPresenter {
	return &DisplayerPresenter{d: d}
}

func (p *DisplayerPresenter) Present(f Frame) error {
	if f.Format != ColorFormatRGBA8888 {
		return nil
	}
	lin, err := f.Linear(p.scratch)
	p.scratch = lin
	if err != nil {
		return err
	}

	dw, dh := p.d.Size()
	w := min(int(dw), int(f.Width))
	h := min(int(dh), int(f.Height))
	for y := 0; y < h; y++ {
		row := lin[y*int(f.Stride):]
		for x := 0; x < w; x++ {
			px := row[x*4 : x*4+4]
			p.d.SetPixel(int16(x), int16(y), color.RGBA{R: px[0], G: px[1], B: px[2], A: 0xFF})
		}
	}
	return p.d.Display()
}

// ImageDisplay is an in-memory drivers.Displayer. It is used as the headless
// screen and for screenshots.
type ImageDisplay struct {
	mu     sync.Mutex
	img    *image.RGBA
	frames uint64
}

func NewImageDisplay(w, h int) *ImageDisplay {
	return &ImageDisplay{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (d *ImageDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *ImageDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !(image.Point{X: int(x), Y: int(y)}.In(d.img.Rect)) {
		return
	}
	d.img.SetRGBA(int(x), int(y), c)
}

func (d *ImageDisplay) Display() error {
	d.mu.Lock()
	d.frames++
	d.mu.Unlock()
	return nil
}

// Frames returns the number of Display calls.
func (d *ImageDisplay) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Snapshot returns a copy of the displayed image.
func (d *ImageDisplay) Snapshot() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := image.NewRGBA(d.img.Rect)
	copy(out.Pix, d.img.Pix)
	return out
}
