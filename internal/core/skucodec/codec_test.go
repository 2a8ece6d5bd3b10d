package skucodec

import (
	"testing"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

func TestCodec_Validate(t *testing.T) {
	c := New("")

	cases := []struct {
		code string
		want bool
	}{
		{"PREFIX.001-16.VelutaLux.07", true},
		{"PREFIX.123-9.A1.00", true},
		{"001-16.VelutaLux.07", false},
		{"PREFIX.01-16.VelutaLux.07", false},
		{"PREFIX.001-160.VelutaLux.07", false},
		{"PREFIX.001-16.Veluta-Lux.07", false},
		{"PREFIX.001-16.VelutaLux.7", false},
		{"PREFIX.001-16.VelutaLux.07 ", false},
		{"xPREFIX.001-16.VelutaLux.07", false},
		{"PREFIXx001-16.VelutaLux.07", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := c.Validate(tc.code); got != tc.want {
			t.Errorf("Validate(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestCodec_Encode(t *testing.T) {
	c := New("")

	cases := []struct {
		name   string
		model  string
		width  int
		fabric string
		color  string
		want   string
	}{
		{"pads model and color", "1", 16, "VelutaLux", "7", "PREFIX.001-16.VelutaLux.07"},
		{"width in decimeters", "001", 160, "VelutaLux", "07", "PREFIX.001-16.VelutaLux.07"},
		{"width under 100 kept", "12", 90, "Oak", "3", "PREFIX.012-90.Oak.03"},
		{"width not divisible by 10", "12", 105, "Oak", "3", "PREFIX.012-105.Oak.03"},
		{"non-numeric model passes through", "A1", 16, "Oak", "3", "PREFIX.A1-16.Oak.03"},
		{"long color keeps rightmost", "5", 16, "Oak", "123", "PREFIX.005-16.Oak.23"},
		{"trims whitespace", " 5 ", 16, " Oak ", " 4 ", "PREFIX.005-16.Oak.04"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := c.Encode(tc.model, tc.width, tc.fabric, tc.color)
			if !ok {
				t.Fatalf("expected ok")
			}
			if got != tc.want {
				t.Fatalf("Encode = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCodec_Encode_EmptyField(t *testing.T) {
	c := New("")

	inputs := []struct {
		model  string
		width  int
		fabric string
		color  string
	}{
		{"", 16, "Oak", "01"},
		{"001", 0, "Oak", "01"},
		{"001", -10, "Oak", "01"},
		{"001", 16, "", "01"},
		{"001", 16, "Oak", ""},
		{"   ", 16, "Oak", "01"},
	}
	for _, in := range inputs {
		if code, ok := c.Encode(in.model, in.width, in.fabric, in.color); ok || code != "" {
			t.Errorf("Encode(%+v) = %q, %v; want empty, false", in, code, ok)
		}
	}
}

func TestCodec_Parse(t *testing.T) {
	c := New("")

	parts, ok := c.Parse("PREFIX.001-16.VelutaLux.07")
	if !ok {
		t.Fatalf("expected code to parse")
	}
	want := domain.SkuParts{Group: "001", SizeNumber: 16, Model: "VelutaLux", ColorNumber: 7}
	if parts != want {
		t.Fatalf("Parse = %+v, want %+v", parts, want)
	}

	if _, ok := c.Parse("LEGACY-123"); ok {
		t.Fatalf("expected legacy code to fail parsing")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := New("")

	inputs := []struct {
		model    string
		width    int
		fabric   string
		color    string
		wantSize int
	}{
		{"1", 16, "VelutaLux", "7", 16},
		{"042", 180, "Oak2", "12", 18},
		{"999", 9, "X", "99", 9},
		{"7", 200, "Linen", "0", 20},
	}
	for _, in := range inputs {
		code, ok := c.Encode(in.model, in.width, in.fabric, in.color)
		if !ok {
			t.Fatalf("Encode(%+v) failed", in)
		}
		parts, ok := c.Parse(code)
		if !ok {
			t.Fatalf("Parse(%q) failed", code)
		}
		if parts.SizeNumber != in.wantSize || parts.Model != in.fabric {
			t.Errorf("round trip %q: got %+v", code, parts)
		}
		if parts.ColorNumber != atoiOrZero(normalizeColor(in.color)) {
			t.Errorf("round trip %q: color %d", code, parts.ColorNumber)
		}
	}
}

func TestCodec_CustomPrefix(t *testing.T) {
	c := New("KZ.BED")

	code, ok := c.Encode("1", 16, "Oak", "1")
	if !ok || code != "KZ.BED.001-16.Oak.01" {
		t.Fatalf("Encode = %q, %v", code, ok)
	}
	if !c.Validate(code) {
		t.Fatalf("expected %q to validate", code)
	}
	if c.Validate("KZxBED.001-16.Oak.01") {
		t.Fatalf("prefix dot must be literal")
	}
	if New("").Validate(code) {
		t.Fatalf("default codec must reject other families")
	}
}

func atoiOrZero(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
