package hal

import (
	"errors"
	"testing"
)

func TestNewVirtualInputErrors(t *testing.T) {
	if _, err := NewVirtualInput(); !errors.Is(err, ErrInvalidController) {
		t.Fatalf("NewVirtualInput() error = %v, want ErrInvalidController", err)
	}
	if _, err := NewVirtualInput(ControllerID(9)); !errors.Is(err, ErrInvalidController) {
		t.Fatalf("NewVirtualInput(9) error = %v, want ErrInvalidController", err)
	}
}

func TestVirtualInputEdges(t *testing.T) {
	in, err := NewVirtualInput(ControllerHandheld)
	if err != nil {
		t.Fatalf("NewVirtualInput() error = %v", err)
	}

	steps := []struct {
		held           Key
		down, up, want Key
	}{
		{held: KeyA, down: KeyA, up: 0, want: KeyA},
		{held: KeyA, down: 0, up: 0, want: KeyA},
		{held: KeyA | KeyB, down: KeyB, up: 0, want: KeyA | KeyB},
		{held: KeyB, down: 0, up: KeyA, want: KeyB},
		{held: 0, down: 0, up: KeyB, want: 0},
	}
	for i, st := range steps {
		in.SetHeld(ControllerHandheld, st.held)
		c, err := in.Controller(ControllerHandheld)
		if err != nil {
			t.Fatalf("step %d: Controller() error = %v", i, err)
		}
		if c.ButtonsDown() != st.down || c.ButtonsUp() != st.up || c.ButtonsHeld() != st.want {
			t.Fatalf("step %d: down/up/held = %v/%v/%v, want %v/%v/%v", i,
				c.ButtonsDown(), c.ButtonsUp(), c.ButtonsHeld(), st.down, st.up, st.want)
		}
	}
}

func TestVirtualInputConnection(t *testing.T) {
	in, err := NewVirtualInput(ControllerPlayer1, ControllerHandheld)
	if err != nil {
		t.Fatalf("NewVirtualInput() error = %v", err)
	}
	if !in.IsControllerConnected(ControllerPlayer1) {
		t.Fatalf("IsControllerConnected(Player1) = false, want true")
	}
	in.SetConnected(ControllerPlayer1, false)
	if in.IsControllerConnected(ControllerPlayer1) {
		t.Fatalf("IsControllerConnected(Player1) = true after disconnect")
	}
	if _, err := in.Controller(ControllerPlayer1); !errors.Is(err, ErrNoController) {
		t.Fatalf("Controller(Player1) error = %v, want ErrNoController", err)
	}
	if _, err := in.Controller(ControllerPlayer2); !errors.Is(err, ErrNoController) {
		t.Fatalf("Controller(Player2) error = %v, want ErrNoController", err)
	}
}

func TestVirtualInputTouch(t *testing.T) {
	in, err := NewVirtualInput(ControllerHandheld)
	if err != nil {
		t.Fatalf("NewVirtualInput() error = %v", err)
	}
	if _, err := in.TouchSample(0); !errors.Is(err, ErrNoTouch) {
		t.Fatalf("TouchSample(0) error = %v, want ErrNoTouch", err)
	}

	in.SetTouches(TouchData{X: 10, Y: 20})
	c, _ := in.Controller(ControllerHandheld)
	if !c.ButtonsHeld().Contains(KeyTouch) || !c.ButtonsDown().Contains(KeyTouch) {
		t.Fatalf("held = %v, want Touch held and pressed", c.ButtonsHeld())
	}
	td, err := in.TouchSample(0)
	if err != nil || td.X != 10 || td.Y != 20 {
		t.Fatalf("TouchSample(0) = %+v, %v, want (10,20)", td, err)
	}

	// Touch is not a button and cannot be pressed directly.
	in.SetTouches()
	in.Press(ControllerHandheld, KeyTouch)
	c, _ = in.Controller(ControllerHandheld)
	if c.ButtonsHeld().Contains(KeyTouch) || !c.ButtonsUp().Contains(KeyTouch) {
		t.Fatalf("held/up = %v/%v, want Touch released", c.ButtonsHeld(), c.ButtonsUp())
	}
}

func TestKeyContains(t *testing.T) {
	tests := []struct {
		set, mask Key
		want      bool
	}{
		{KeyA, KeyA, true},
		{KeyA | KeyB, KeyA, true},
		{KeyA, KeyA | KeyB, false},
		{KeyB, KeyA, false},
		{KeyA, 0, false},
	}
	for _, tt := range tests {
		if got := tt.set.Contains(tt.mask); got != tt.want {
			t.Fatalf("(%v).Contains(%v) = %v, want %v", tt.set, tt.mask, got, tt.want)
		}
	}
	if got := (KeyA | KeyPlus).String(); got != "A|Plus" {
		t.Fatalf("String() = %q, want %q", got, "A|Plus")
	}
}
