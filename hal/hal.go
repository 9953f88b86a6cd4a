// Package hal holds the contracts between the UI core and the platform: the
// scan-out surface, the input source and the touch/key vocabulary.
//
// The package also provides host implementations of these contracts so the
// core can run on a desktop (see hal/ebitenhost) or headless.
package hal

import (
	"errors"
	"time"
)

var (
	ErrTimeout           = errors.New("hal: timed out")
	ErrWouldBlock        = errors.New("hal: no buffer available")
	ErrInvalidSlot       = errors.New("hal: invalid buffer slot")
	ErrClosed            = errors.New("hal: surface closed")
	ErrNoController      = errors.New("hal: no controller available")
	ErrInvalidController = errors.New("hal: invalid controller configuration")
	ErrNoTouch           = errors.New("hal: no touch sample")
)

// NoTimeout makes a wait block until the condition is met.
const NoTimeout time.Duration = -1

// ColorFormat identifies the pixel encoding of a surface.
type ColorFormat uint32

const (
	// ColorFormatRGBA8888 stores r, g, b, a bytes in memory order.
	ColorFormatRGBA8888 ColorFormat = iota + 1
)

// BytesPerPixel returns the size of one pixel.
func (f ColorFormat) BytesPerPixel() int {
	switch f {
	case ColorFormatRGBA8888:
		return 4
	default:
		return 0
	}
}

// Fence is a synchronization point on a timeline: it is signalled once the
// timeline identified by ID reaches Value.
type Fence struct {
	ID    uint32
	Value uint32
}

// MultiFence groups up to four fences that must all be signalled.
type MultiFence struct {
	Count  uint32
	Fences [4]Fence
}

// Buffer is one dequeued swap-chain buffer.
type Buffer struct {
	Data   []byte
	Slot   int
	Fences MultiFence
}

// Surface is a swap chain of scan-out buffers.
type Surface interface {
	Width() uint32
	Height() uint32
	ComputeStride() uint32
	ColorFormat() ColorFormat

	// DequeueBuffer hands out a free buffer. When blocking is false and no
	// buffer is free it returns ErrWouldBlock.
	DequeueBuffer(blocking bool) (Buffer, error)
	QueueBuffer(slot int, fences MultiFence) error
	WaitFences(fences MultiFence, timeout time.Duration) error
	WaitVsync(timeout time.Duration) error
}

// BlockLinearSurface is implemented by surfaces whose buffers use a block
// height other than the display engine default.
type BlockLinearSurface interface {
	BlockHeightLog2() uint32
}

// CacheFlusher is implemented by surfaces whose buffers are read by a device
// that does not snoop CPU caches.
type CacheFlusher interface {
	FlushDataCache(b []byte)
}

// Controller is the button state of one controller, sampled once.
type Controller interface {
	ButtonsDown() Key
	ButtonsUp() Key
	ButtonsHeld() Key
}

// TouchData is one touch-screen sample.
type TouchData struct {
	X, Y      uint32
	DiameterX uint32
	DiameterY uint32
	Angle     uint32
}

// InputSource samples controllers and the touch screen.
type InputSource interface {
	IsControllerConnected(id ControllerID) bool
	// Controller samples the controller. Every call advances the
	// pressed/released edge detection by one sample.
	Controller(id ControllerID) (Controller, error)
	TouchSample(index int) (TouchData, error)
}
