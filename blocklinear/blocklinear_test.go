package blocklinear

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestGOBOrder(t *testing.T) {
	tests := []struct {
		i    int
		x, y int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 16, 0},
		{3, 16, 1},
		{4, 0, 2},
		{7, 16, 3},
		{8, 0, 4},
		{15, 16, 7},
		{16, 32, 0},
		{18, 48, 0},
		{31, 48, 7},
	}
	for _, tt := range tests {
		got := gobOrder[tt.i]
		if got.x != tt.x || got.y != tt.y {
			t.Fatalf("gobOrder[%d] = (%d,%d), want (%d,%d)", tt.i, got.x, got.y, tt.x, tt.y)
		}
	}

	seen := map[elem]bool{}
	for _, e := range gobOrder {
		if seen[e] {
			t.Fatalf("duplicate element %+v", e)
		}
		seen[e] = true
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		height, log2, want uint32
	}{
		{720, 2, 736},
		{720, 4, 768},
		{720, 0, 720},
		{1, 0, 8},
		{8, 0, 8},
		{9, 1, 16},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := AlignedHeight(tt.height, tt.log2); got != tt.want {
			t.Fatalf("AlignedHeight(%d, %d) = %d, want %d", tt.height, tt.log2, got, tt.want)
		}
	}

	if got := AlignStride(1280 * 4); got != 5120 || got%GOBWidth != 0 {
		t.Fatalf("AlignStride(5120) = %d, want 5120", got)
	}
	if got := AlignStride(100 * 4); got != 448 {
		t.Fatalf("AlignStride(400) = %d, want 448", got)
	}
}

func fillRandom(b []byte, seed int64) {
	r := rand.New(rand.NewSource(seed))
	r.Read(b)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name                   string
		stride, height, log2 uint32
	}{
		{"switch-720p", 5120, 720, 2},
		{"switch-720p-default", 5120, 720, DefaultBlockHeightLog2},
		{"small", 448, 100, 0},
		{"partial-block", 128, 13, 1},
		{"single-gob", 64, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Size(tt.stride, tt.height, tt.log2)
			src := make([]byte, n)
			fillRandom(src, int64(n))

			tiled := make([]byte, n)
			if err := Encode(tiled, src, tt.stride, tt.height, tt.log2); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			back := make([]byte, n)
			if err := Decode(back, tiled, tt.stride, tt.height, tt.log2); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			// Rows below the last visible GOB row are never transferred.
			visible := int(tt.stride) * int((tt.height+GOBHeight-1)/GOBHeight*GOBHeight)
			if !bytes.Equal(back[:visible], src[:visible]) {
				t.Fatalf("Decode(Encode(src)) != src")
			}
		})
	}
}

func TestEncodeMatchesGOBOffset(t *testing.T) {
	const stride, height, log2 = 256, 40, 1
	n := Size(stride, height, log2)
	src := make([]byte, n)
	fillRandom(src, 7)
	dst := make([]byte, n)
	if err := Encode(dst, src, stride, height, log2); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	seen := make(map[int]bool, stride*height)
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < stride; x++ {
			off := GOBOffset(x, y, stride, log2)
			if seen[off] {
				t.Fatalf("GOBOffset(%d,%d) = %d already used", x, y, off)
			}
			seen[off] = true
			if got, want := dst[off], src[y*stride+x]; got != want {
				t.Fatalf("dst[GOBOffset(%d,%d)] = %#x, want %#x", x, y, got, want)
			}
		}
	}
}

func TestEncodeSkipsGOBsBelowHeight(t *testing.T) {
	// 32-row blocks; only the first two GOBs of each column are visible.
	const stride, height, log2 = 128, 10, 2
	n := Size(stride, height, log2)
	src := make([]byte, n)
	dst := bytes.Repeat([]byte{0xEE}, n)
	if err := Encode(dst, src, stride, height, log2); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for col := 0; col < stride/GOBWidth; col++ {
		block := dst[col*4*GOBSize : (col+1)*4*GOBSize]
		for i, b := range block[:2*GOBSize] {
			if b != 0 {
				t.Fatalf("column %d byte %d = %#x, want 0", col, i, b)
			}
		}
		for i, b := range block[2*GOBSize:] {
			if b != 0xEE {
				t.Fatalf("column %d hidden byte %d = %#x, want untouched", col, i, b)
			}
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	buf := make([]byte, 4096)
	if err := Encode(buf, buf, 100, 8, 0); !errors.Is(err, ErrBadStride) {
		t.Fatalf("Encode(stride=100) error = %v, want ErrBadStride", err)
	}
	if err := Encode(buf, buf, 64, 8, 6); !errors.Is(err, ErrBadBlockHeight) {
		t.Fatalf("Encode(log2=6) error = %v, want ErrBadBlockHeight", err)
	}
	if err := Encode(buf[:100], buf, 64, 8, 0); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("Encode(short dst) error = %v, want ErrShortBuffer", err)
	}
	if err := Decode(buf[:100], buf, 64, 8, 0); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("Decode(short dst) error = %v, want ErrShortBuffer", err)
	}
}
