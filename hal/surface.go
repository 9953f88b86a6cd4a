package hal

import (
	"fmt"
	"math/bits"
	"sync"
	"sync/atomic"
	"time"

	"nxui/blocklinear"
)

// Presenter receives every queued frame. Present runs on the goroutine that
// queued the buffer and must not keep f.Data after it returns.
type Presenter interface {
	Present(f Frame) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(f Frame) error

func (fn PresenterFunc) Present(f Frame) error { return fn(f) }

// SurfaceConfig describes a MemorySurface.
type SurfaceConfig struct {
	Width  int
	Height int
	// Buffers is the swap-chain length (default 2).
	Buffers int
	// BlockHeight is the block height in GOBs, a power of two up to 32
	// (default 16).
	BlockHeight int
}

// MemorySurface is a Surface backed by host memory. Queued buffers are handed
// to a Presenter; vsync is driven externally through Vsync.
type MemorySurface struct {
	width  uint32
	height uint32
	stride uint32
	log2   uint32

	presenter Presenter

	mu    sync.Mutex
	bufs  [][]byte
	owned []bool

	free      chan int
	fences    *timeline
	vsync     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	presented atomic.Uint64
}

// NewMemorySurface allocates the swap chain. A nil presenter discards frames.
func NewMemorySurface(cfg SurfaceConfig, p Presenter) (*MemorySurface, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("surface: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Buffers <= 0 {
		cfg.Buffers = 2
	}
	if cfg.BlockHeight == 0 {
		cfg.BlockHeight = 1 << blocklinear.DefaultBlockHeightLog2
	}
	if cfg.BlockHeight < 0 || cfg.BlockHeight > 32 || bits.OnesCount(uint(cfg.BlockHeight)) != 1 {
		return nil, fmt.Errorf("surface: invalid block height %d", cfg.BlockHeight)
	}
	if p == nil {
		p = PresenterFunc(func(Frame) error { return nil })
	}

	s := &MemorySurface{
		width:     uint32(cfg.Width),
		height:    uint32(cfg.Height),
		log2:      uint32(bits.TrailingZeros(uint(cfg.BlockHeight))),
		presenter: p,
		free:      make(chan int, cfg.Buffers),
		fences:    newTimeline(),
		vsync:     make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	s.stride = blocklinear.AlignStride(s.width * uint32(ColorFormatRGBA8888.BytesPerPixel()))
	size := blocklinear.Size(s.stride, s.height, s.log2)
	for i := 0; i < cfg.Buffers; i++ {
		s.bufs = append(s.bufs, make([]byte, size))
		s.owned = append(s.owned, false)
		s.free <- i
	}
	return s, nil
}

func (s *MemorySurface) Width() uint32            { return s.width }
func (s *MemorySurface) Height() uint32           { return s.height }
func (s *MemorySurface) ComputeStride() uint32    { return s.stride }
func (s *MemorySurface) ColorFormat() ColorFormat { return ColorFormatRGBA8888 }
func (s *MemorySurface) BlockHeightLog2() uint32  { return s.log2 }

// Presented returns the number of frames handed to the presenter.
func (s *MemorySurface) Presented() uint64 { return s.presented.Load() }

func (s *MemorySurface) DequeueBuffer(blocking bool) (Buffer, error) {
	var slot int
	if blocking {
		select {
		case slot = <-s.free:
		case <-s.done:
			return Buffer{}, ErrClosed
		}
	} else {
		select {
		case slot = <-s.free:
		case <-s.done:
			return Buffer{}, ErrClosed
		default:
			return Buffer{}, ErrWouldBlock
		}
	}

	s.mu.Lock()
	s.owned[slot] = true
	buf := s.bufs[slot]
	s.mu.Unlock()

	// The buffer may be written once the presenter has released it.
	var f MultiFence
	f.Count = 1
	f.Fences[0] = Fence{ID: uint32(slot), Value: s.fences.value(uint32(slot))}
	return Buffer{Data: buf, Slot: slot, Fences: f}, nil
}

func (s *MemorySurface) QueueBuffer(slot int, fences MultiFence) error {
	s.mu.Lock()
	if slot < 0 || slot >= len(s.bufs) || !s.owned[slot] {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	buf := s.bufs[slot]
	s.mu.Unlock()

	if err := s.fences.wait(fences, NoTimeout, s.done); err != nil {
		return err
	}

	err := s.presenter.Present(Frame{
		Data:            buf,
		Width:           s.width,
		Height:          s.height,
		Stride:          s.stride,
		BlockHeightLog2: s.log2,
		Format:          ColorFormatRGBA8888,
	})

	s.mu.Lock()
	s.owned[slot] = false
	s.mu.Unlock()
	s.fences.signal(uint32(slot))
	s.free <- slot

	if err != nil {
		return fmt.Errorf("present: %w", err)
	}
	s.presented.Add(1)
	return nil
}

func (s *MemorySurface) WaitFences(fences MultiFence, timeout time.Duration) error {
	return s.fences.wait(fences, timeout, s.done)
}

// Vsync signals one vertical blank. Signals are not queued: a vsync that
// nobody waits for is coalesced with the next one.
func (s *MemorySurface) Vsync() {
	select {
	case s.vsync <- struct{}{}:
	default:
	}
}

func (s *MemorySurface) WaitVsync(timeout time.Duration) error {
	select {
	case <-s.vsync:
		return nil
	default:
	}
	var expire <-chan time.Time
	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expire = t.C
	}
	select {
	case <-s.vsync:
		return nil
	case <-expire:
		return ErrTimeout
	case <-s.done:
		return ErrClosed
	}
}

// Close wakes every blocked caller with ErrClosed.
func (s *MemorySurface) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}
