package codec

import (
	"math"
	"testing"
)

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{math.MinInt, 0},
		{-1, 0},
		{0, 0},
		{55, 55},
		{99, 99},
		{100, 99},
		{math.MaxInt, 99},
	}

	for _, tt := range tests {
		if got := ClampByte(tt.in); got != tt.want {
			t.Errorf("ClampByte(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClampNibble(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{math.MinInt32, 0},
		{-7, 0},
		{0, 0},
		{9, 9},
		{15, 15},
		{16, 15},
		{255, 15},
	}

	for _, tt := range tests {
		if got := ClampNibble(tt.in); got != tt.want {
			t.Errorf("ClampNibble(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClamp_StaysInRange(t *testing.T) {
	for v := -300; v <= 300; v += 7 {
		if got := ClampByte(v); got > MaxRating {
			t.Fatalf("ClampByte(%d) = %d out of range", v, got)
		}
		if got := ClampNibble(v); got > MaxNibble {
			t.Fatalf("ClampNibble(%d) = %d out of range", v, got)
		}
	}
}

func TestPackByte(t *testing.T) {
	tests := []struct {
		name      string
		high, low uint8
		want      uint8
		wantHigh  uint8
		wantLow   uint8
	}{
		{"zero", 0, 0, 0x00, 0, 0},
		{"contract 3 loan 20", 3, 20, 0x74, 3, 20},
		{"max", 7, 31, 0xFF, 7, 31},
		{"excess bits dropped", 0x0F, 0x3F, 0xFF, 7, 31},
		{"contract only", 5, 0, 0xA0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PackByte(tt.high, tt.low)
			if got != tt.want {
				t.Errorf("PackByte(%d, %d) = %#02x, want %#02x", tt.high, tt.low, got, tt.want)
			}
			h, l := UnpackByte(got)
			if h != tt.wantHigh || l != tt.wantLow {
				t.Errorf("UnpackByte(%#02x) = (%d, %d), want (%d, %d)", got, h, l, tt.wantHigh, tt.wantLow)
			}
		})
	}
}

func TestPackNibbles(t *testing.T) {
	b := PackNibbles(0x3, 0xC)
	if b != 0xC3 {
		t.Fatalf("PackNibbles = %#02x, want 0xc3", b)
	}
	lo, hi := UnpackNibbles(b)
	if lo != 0x3 || hi != 0xC {
		t.Errorf("UnpackNibbles = (%d, %d), want (3, 12)", lo, hi)
	}
}

func TestEncodeFixedWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		text  string
		want  string
	}{
		{"padded", 8, "Kane", "Kane    "},
		{"exact", 4, "Kane", "Kane"},
		{"truncated", 4, "Bellingham", "Bell"},
		{"empty", 3, "", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := make([]byte, tt.width)
			for i := range dest {
				dest[i] = 0xAA
			}
			EncodeFixedWidth(dest, tt.text)
			if string(dest) != tt.want {
				t.Errorf("EncodeFixedWidth(%q) = %q, want %q", tt.text, dest, tt.want)
			}
		})
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	names := []string{"A. Smith", "Jo", "Manchester Utd", "X Y Z"}
	for _, name := range names {
		buf := make([]byte, 20)
		EncodeFixedWidth(buf, name)
		if got := DecodeFixedWidth(buf); got != name {
			t.Errorf("round trip %q = %q", name, got)
		}
	}
}

func TestDecodeFixedWidth_StopsAtNUL(t *testing.T) {
	buf := []byte{'A', 'b', 'c', 0, 'x', 'x'}
	if got := DecodeFixedWidth(buf); got != "Abc" {
		t.Errorf("DecodeFixedWidth = %q, want %q", got, "Abc")
	}
}

func TestSwapEndian16(t *testing.T) {
	tests := []struct {
		in, want int16
	}{
		{0, 0},
		{1, 0x0100},
		{0x0102, 0x0201},
		{-1, -1},
		{3931, 0x5B0F},
	}

	for _, tt := range tests {
		if got := SwapEndian16(tt.in); got != tt.want {
			t.Errorf("SwapEndian16(%#04x) = %#04x, want %#04x", tt.in, got, tt.want)
		}
		if got := SwapEndian16(SwapEndian16(tt.in)); got != tt.in {
			t.Errorf("double swap of %d = %d", tt.in, got)
		}
	}
}
