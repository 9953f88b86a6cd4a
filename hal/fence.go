package hal

import (
	"sync"
	"time"
)

// timeline tracks the signalled value of every fence id.
type timeline struct {
	mu      sync.Mutex
	values  map[uint32]uint32
	changed chan struct{}
}

func newTimeline() *timeline {
	return &timeline{values: make(map[uint32]uint32), changed: make(chan struct{})}
}

func (t *timeline) value(id uint32) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.values[id]
}

func (t *timeline) signal(id uint32) {
	t.mu.Lock()
	t.values[id]++
	close(t.changed)
	t.changed = make(chan struct{})
	t.mu.Unlock()
}

// reached reports whether every fence in f is signalled and, if not, returns a
// channel closed on the next signal.
func (t *timeline) reached(f MultiFence) (bool, <-chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := int(f.Count)
	if n > len(f.Fences) {
		n = len(f.Fences)
	}
	for _, fe := range f.Fences[:n] {
		if t.values[fe.ID] < fe.Value {
			return false, t.changed
		}
	}
	return true, nil
}

func (t *timeline) wait(f MultiFence, timeout time.Duration, done <-chan struct{}) error {
	var expire <-chan time.Time
	if timeout >= 0 {
		tm := time.NewTimer(timeout)
		defer tm.Stop()
		expire = tm.C
	}
	for {
		ok, changed := t.reached(f)
		if ok {
			return nil
		}
		select {
		case <-changed:
		case <-expire:
			return ErrTimeout
		case <-done:
			return ErrClosed
		}
	}
}
