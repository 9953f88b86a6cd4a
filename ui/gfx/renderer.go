// Package gfx is the software frame renderer.
//
// Drawing happens on a CPU-side, pitch-linear RGBA8 buffer. At the end of
// every frame the buffer is converted to the block-linear layout of the
// scan-out engine and queued on the surface:
//
//	Start (dequeue + fences) → Clear/DrawRect/DrawText → End (tile + queue + vsync)
//
// A Renderer is owned by a single goroutine.
package gfx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"nxui/blocklinear"
	"nxui/hal"
)

var (
	ErrInvalidSurface = errors.New("gfx: invalid surface")
	ErrFrameActive    = errors.New("gfx: frame already started")
	ErrNoFrame        = errors.New("gfx: no frame started")
	ErrBufferTooSmall = errors.New("gfx: surface buffer too small")
)

type registeredFont struct {
	name string
	font Font
}

// Renderer draws frames for one surface.
type Renderer struct {
	// FenceTimeout bounds the wait for a dequeued buffer to become writable.
	FenceTimeout time.Duration
	// VsyncTimeout bounds the wait for the vertical blank after a present.
	VsyncTimeout time.Duration

	linear []byte

	// Borrowed from the surface between Start and End.
	gpu    []byte
	slot   int
	fences hal.MultiFence
	active bool

	stride        uint32
	width         uint32
	height        uint32
	alignedHeight uint32
	log2          uint32
	format        hal.ColorFormat

	fonts  []registeredFont
	frames uint64
}

// NewRenderer sizes the scratch buffer for the surface. No buffer is acquired
// from the surface until Start.
func NewRenderer(s hal.Surface) (*Renderer, error) {
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidSurface, w, h)
	}
	format := s.ColorFormat()
	if format.BytesPerPixel() != 4 {
		return nil, fmt.Errorf("%w: unsupported color format %d", ErrInvalidSurface, format)
	}
	stride := blocklinear.AlignStride(s.ComputeStride())
	if stride < w*4 {
		return nil, fmt.Errorf("%w: stride %d for width %d", ErrInvalidSurface, stride, w)
	}
	log2 := uint32(blocklinear.DefaultBlockHeightLog2)
	if bl, ok := s.(hal.BlockLinearSurface); ok {
		log2 = bl.BlockHeightLog2()
	}

	r := &Renderer{
		FenceTimeout:  hal.NoTimeout,
		VsyncTimeout:  hal.NoTimeout,
		stride:        stride,
		width:         w,
		height:        h,
		alignedHeight: blocklinear.AlignedHeight(h, log2),
		log2:          log2,
		format:        format,
	}
	r.linear = make([]byte, int(r.stride)*int(r.alignedHeight))

	Logger().Debug("gfx: renderer created",
		"width", w, "height", h, "stride", stride,
		"alignedHeight", r.alignedHeight, "blockHeightLog2", log2,
		"bytes", len(r.linear))
	return r, nil
}

func (r *Renderer) Width() uint32                { return r.width }
func (r *Renderer) Height() uint32               { return r.height }
func (r *Renderer) Stride() uint32               { return r.stride }
func (r *Renderer) AlignedHeight() uint32        { return r.alignedHeight }
func (r *Renderer) BlockHeightLog2() uint32      { return r.log2 }
func (r *Renderer) ColorFormat() hal.ColorFormat { return r.format }

// Frames returns the number of frames queued on the surface.
func (r *Renderer) Frames() uint64 { return r.frames }

// Start acquires the next surface buffer and waits until it may be written.
func (r *Renderer) Start(s hal.Surface) error {
	if r.active {
		return ErrFrameActive
	}
	buf, err := s.DequeueBuffer(true)
	if err != nil {
		return fmt.Errorf("gfx: dequeue buffer: %w", err)
	}
	if err := s.WaitFences(buf.Fences, r.FenceTimeout); err != nil {
		return fmt.Errorf("gfx: wait fences: %w", err)
	}
	r.gpu = buf.Data
	r.slot = buf.Slot
	r.fences = buf.Fences
	r.active = true
	return nil
}

// End converts the scratch buffer into the acquired buffer, queues it and
// waits for the next vertical blank. The acquired buffer is given up even if
// End fails.
func (r *Renderer) End(s hal.Surface) error {
	if !r.active {
		return ErrNoFrame
	}
	gpu := r.gpu
	r.gpu = nil
	r.active = false

	if len(gpu) < len(r.linear) {
		return fmt.Errorf("%w: %d < %d", ErrBufferTooSmall, len(gpu), len(r.linear))
	}
	if err := blocklinear.Encode(gpu, r.linear, r.stride, r.height, r.log2); err != nil {
		return fmt.Errorf("gfx: convert frame: %w", err)
	}
	if cf, ok := s.(hal.CacheFlusher); ok {
		cf.FlushDataCache(gpu)
	}
	if err := s.QueueBuffer(r.slot, r.fences); err != nil {
		return fmt.Errorf("gfx: queue buffer: %w", err)
	}
	r.frames++
	if err := s.WaitVsync(r.VsyncTimeout); err != nil {
		return fmt.Errorf("gfx: wait vsync: %w", err)
	}
	return nil
}

// Clear fills the whole scratch buffer, padding included, with c.
func (r *Renderer) Clear(c Color) {
	binary.LittleEndian.PutUint32(r.linear, c.Encode())
	for n := 4; n < len(r.linear); n *= 2 {
		copy(r.linear[n:], r.linear[:n])
	}
}

func (r *Renderer) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= int(r.width) || y >= int(r.height) {
		return 0, false
	}
	return y*int(r.stride) + x*4, true
}

// BlendPixel composites c over the pixel at (x, y). Coordinates outside the
// surface are ignored.
func (r *Renderer) BlendPixel(x, y int, c Color) {
	off, ok := r.offset(x, y)
	if !ok {
		return
	}
	p := r.linear[off : off+4]
	old := Decode(binary.LittleEndian.Uint32(p))
	binary.LittleEndian.PutUint32(p, c.BlendOver(old).Encode())
}

// Pixel returns the scratch buffer pixel at (x, y).
func (r *Renderer) Pixel(x, y int) (Color, bool) {
	off, ok := r.offset(x, y)
	if !ok {
		return Color{}, false
	}
	return Decode(binary.LittleEndian.Uint32(r.linear[off:])), true
}

// DrawRect blends c over the rectangle [x, x+w) × [y, y+h), clipped to the
// surface.
func (r *Renderer) DrawRect(x, y, w, h int, c Color) {
	x0 := clampInt(x, 0, int(r.width))
	x1 := clampInt(x+w, 0, int(r.width))
	y0 := clampInt(y, 0, int(r.height))
	y1 := clampInt(y+h, 0, int(r.height))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			r.BlendPixel(px, py, c)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LoadFont registers a font under name. The renderer does not take ownership.
func (r *Renderer) LoadFont(f Font, name string) {
	r.fonts = append(r.fonts, registeredFont{name: name, font: f})
}

// FindFont returns the first font registered under name.
func (r *Renderer) FindFont(name string) (Font, bool) {
	for _, rf := range r.fonts {
		if rf.name == name {
			return rf.font, true
		}
	}
	return nil, false
}
