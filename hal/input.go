package hal

import (
	"fmt"
	"sync"
)

// VirtualInput is an InputSource whose state is set by the host: a window
// backend, a headless script or a test.
//
// It is safe for concurrent use; the host usually writes from its own thread
// while the UI loop samples.
type VirtualInput struct {
	mu      sync.Mutex
	pads    map[ControllerID]*virtualPad
	touches []TouchData
}

type virtualPad struct {
	connected bool
	held      Key
	prev      Key
}

type padSample struct {
	down, up, held Key
}

func (s padSample) ButtonsDown() Key { return s.down }
func (s padSample) ButtonsUp() Key   { return s.up }
func (s padSample) ButtonsHeld() Key { return s.held }

// NewVirtualInput creates an input source serving the given controllers. All of
// them start connected with no keys held.
func NewVirtualInput(ids ...ControllerID) (*VirtualInput, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no controllers", ErrInvalidController)
	}
	in := &VirtualInput{pads: make(map[ControllerID]*virtualPad, len(ids))}
	for _, id := range ids {
		if !id.Valid() {
			return nil, fmt.Errorf("%w: id %#x", ErrInvalidController, uint32(id))
		}
		in.pads[id] = &virtualPad{connected: true}
	}
	return in, nil
}

// SetConnected marks a configured controller as (dis)connected.
func (in *VirtualInput) SetConnected(id ControllerID, connected bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if p := in.pads[id]; p != nil {
		p.connected = connected
		if !connected {
			p.held = 0
		}
	}
}

// SetHeld replaces the set of keys held on a controller.
func (in *VirtualInput) SetHeld(id ControllerID, keys Key) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if p := in.pads[id]; p != nil {
		p.held = keys &^ KeyTouch
	}
}

// Press adds keys to the held set of a controller.
func (in *VirtualInput) Press(id ControllerID, keys Key) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if p := in.pads[id]; p != nil {
		p.held |= keys &^ KeyTouch
	}
}

// Release removes keys from the held set of a controller.
func (in *VirtualInput) Release(id ControllerID, keys Key) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if p := in.pads[id]; p != nil {
		p.held &^= keys
	}
}

// SetTouches replaces the current touch contacts. KeyTouch is reported as held
// on every controller while at least one contact is present.
func (in *VirtualInput) SetTouches(ts ...TouchData) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.touches = append(in.touches[:0], ts...)
}

func (in *VirtualInput) IsControllerConnected(id ControllerID) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	p := in.pads[id]
	return p != nil && p.connected
}

func (in *VirtualInput) Controller(id ControllerID) (Controller, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	p := in.pads[id]
	if p == nil || !p.connected {
		return nil, fmt.Errorf("%w: id %#x", ErrNoController, uint32(id))
	}
	held := p.held
	if len(in.touches) > 0 {
		held |= KeyTouch
	}
	s := padSample{
		down: held &^ p.prev,
		up:   p.prev &^ held,
		held: held,
	}
	p.prev = held
	return s, nil
}

func (in *VirtualInput) TouchSample(index int) (TouchData, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if index < 0 || index >= len(in.touches) {
		return TouchData{}, fmt.Errorf("%w: index %d", ErrNoTouch, index)
	}
	return in.touches[index], nil
}
