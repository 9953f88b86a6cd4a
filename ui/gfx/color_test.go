package gfx

import "testing"

func TestColorEncodeDecode(t *testing.T) {
	c := RGBA(0x11, 0x22, 0x33, 0x44)
	if got := c.Encode(); got != 0x44332211 {
		t.Fatalf("Encode() = %#08x, want 0x44332211", got)
	}
	for _, raw := range []uint32{0, 0xFFFFFFFF, 0x80402010, 0x00FF00FF} {
		if got := Decode(raw).Encode(); got != raw {
			t.Fatalf("Decode(%#08x).Encode() = %#08x", raw, got)
		}
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name     string
		src, dst Color
		want     Color
	}{
		{"opaque", RGB(200, 100, 50), RGBA(10, 20, 30, 40), RGB(200, 100, 50)},
		{"transparent", RGBA(200, 100, 50, 0), RGBA(10, 20, 30, 40), RGB(10, 20, 30)},
		// (255*128 + 0*127)/255 = 128
		{"half", RGBA(255, 255, 255, 128), RGBA(0, 0, 0, 0), RGB(128, 128, 128)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(tt.src, tt.dst); got != tt.want {
				t.Fatalf("Blend(%v, %v) = %v, want %v", tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestBlendTruncates(t *testing.T) {
	// (100*1 + 0*254)/255 = 0
	if got := RGBA(100, 100, 100, 1).BlendOver(RGB(0, 0, 0)); got != RGB(0, 0, 0) {
		t.Fatalf("BlendOver() = %v, want black", got)
	}
	// (0*254 + 255*1)/255 = 1
	if got := RGBA(0, 0, 0, 254).BlendOver(RGB(255, 255, 255)); got != RGB(1, 1, 1) {
		t.Fatalf("BlendOver() = %v, want (1,1,1)", got)
	}
}
