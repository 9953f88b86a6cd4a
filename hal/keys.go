package hal

import "strings"

// Key is a set of controller buttons.
type Key uint64

const (
	KeyA Key = 1 << iota
	KeyB
	KeyX
	KeyY
	KeyLStick
	KeyRStick
	KeyL
	KeyR
	KeyZL
	KeyZR
	KeyPlus
	KeyMinus
	KeyDLeft
	KeyDUp
	KeyDRight
	KeyDDown
	KeyLStickLeft
	KeyLStickUp
	KeyLStickRight
	KeyLStickDown
	KeyRStickLeft
	KeyRStickUp
	KeyRStickRight
	KeyRStickDown
	KeySL
	KeySR
	// KeyTouch is held while the touch screen reports at least one contact.
	KeyTouch
)

var keyNames = []struct {
	k    Key
	name string
}{
	{KeyA, "A"}, {KeyB, "B"}, {KeyX, "X"}, {KeyY, "Y"},
	{KeyLStick, "LStick"}, {KeyRStick, "RStick"},
	{KeyL, "L"}, {KeyR, "R"}, {KeyZL, "ZL"}, {KeyZR, "ZR"},
	{KeyPlus, "Plus"}, {KeyMinus, "Minus"},
	{KeyDLeft, "Left"}, {KeyDUp, "Up"}, {KeyDRight, "Right"}, {KeyDDown, "Down"},
	{KeyLStickLeft, "LStickLeft"}, {KeyLStickUp, "LStickUp"},
	{KeyLStickRight, "LStickRight"}, {KeyLStickDown, "LStickDown"},
	{KeyRStickLeft, "RStickLeft"}, {KeyRStickUp, "RStickUp"},
	{KeyRStickRight, "RStickRight"}, {KeyRStickDown, "RStickDown"},
	{KeySL, "SL"}, {KeySR, "SR"}, {KeyTouch, "Touch"},
}

// Contains reports whether every key of mask is in k. An empty mask is never
// contained.
func (k Key) Contains(mask Key) bool {
	return mask != 0 && k&mask == mask
}

func (k Key) String() string {
	if k == 0 {
		return "none"
	}
	var parts []string
	for _, kn := range keyNames {
		if k&kn.k != 0 {
			parts = append(parts, kn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ControllerID identifies a controller slot.
type ControllerID uint32

const (
	ControllerPlayer1 ControllerID = iota
	ControllerPlayer2
	ControllerPlayer3
	ControllerPlayer4
	ControllerPlayer5
	ControllerPlayer6
	ControllerPlayer7
	ControllerPlayer8

	// ControllerHandheld is the controller attached to the console itself.
	ControllerHandheld ControllerID = 0x20
)

// Valid reports whether id names a controller slot.
func (id ControllerID) Valid() bool {
	return id <= ControllerPlayer8 || id == ControllerHandheld
}
