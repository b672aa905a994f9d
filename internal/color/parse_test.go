package color

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseString_Hex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		alpha float64
	}{
		{"canonical", "#ff0099", "#ff0099", 1},
		{"shorthand", "#f09", "#ff0099", 1},
		{"uppercase", "#FF0099", "#ff0099", 1},
		{"padded", "  #eb6f92 ", "#eb6f92", 1},
		{"shorthand alpha", "#f09c", "#ff0099cc", 0.8},
		{"eight digits", "#ff009980", "#ff009980", 128.0 / 255},
		{"opaque alpha dropped", "#ff0099ff", "#ff0099", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString(%q) error: %v", tt.input, err)
			}
			if got.Hex != tt.want {
				t.Errorf("ParseString(%q).Hex = %q, want %q", tt.input, got.Hex, tt.want)
			}
			if math.Abs(got.A-tt.alpha) > 1e-9 {
				t.Errorf("ParseString(%q).A = %v, want %v", tt.input, got.A, tt.alpha)
			}
		})
	}
}

func TestParseString_HexRoundtrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#00050a", "#eb6f92", "#19172480", "#31748f00"} {
		got, err := ParseString(hex)
		if err != nil {
			t.Fatalf("ParseString(%q) error: %v", hex, err)
		}
		if got.Hex != hex {
			t.Errorf("ParseString(%q).Hex = %q", hex, got.Hex)
		}

		rebuilt, err := Parse([]float64{float64(got.R), float64(got.G), float64(got.B), got.A})
		if err != nil {
			t.Fatalf("Parse tuple error: %v", err)
		}
		if rebuilt.Hex != hex {
			t.Errorf("hex derived from channels of %q = %q", hex, rebuilt.Hex)
		}
	}
}

func TestParseString_ShorthandMatchesLonghand(t *testing.T) {
	short, err := ParseString("#f09")
	if err != nil {
		t.Fatal(err)
	}
	long, err := ParseString("#ff0099")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(long, short); diff != "" {
		t.Errorf("#f09 and #ff0099 differ (-long +short):\n%s", diff)
	}
}

func TestParseString_Functional(t *testing.T) {
	tests := []struct {
		name  string
		input string
		hex   string
		rgba  string
	}{
		{"rgb commas", "rgb(255, 0, 153)", "#ff0099", "rgba(255,0,153,1)"},
		{"rgb spaces", "rgb(255 0 153)", "#ff0099", "rgba(255,0,153,1)"},
		{"rgb percentages", "rgb(100%, 0%, 60%)", "#ff0099", "rgba(255,0,153,1)"},
		{"rgb decimals", "rgb(254.6, 0.4, 153)", "#ff0099", "rgba(255,0,153,1)"},
		{"rgba comma alpha", "rgba(255, 0, 153, .5)", "#ff009980", "rgba(255,0,153,0.5)"},
		{"rgb slash alpha", "rgb(255 0 153 / 50%)", "#ff009980", "rgba(255,0,153,0.5)"},
		{"rgb clamps", "rgb(300, -20, 153)", "#ff0099", "rgba(255,0,153,1)"},
		{"uppercase", "RGB(255,0,153)", "#ff0099", "rgba(255,0,153,1)"},
		{"hsl", "hsl(270, 60%, 50%)", "#8033cc", "rgba(128,51,204,1)"},
		{"hsl turn", "hsl(0.75turn 60% 50%)", "#8033cc", "rgba(128,51,204,1)"},
		{"hsl fractions", "hsl(270, 0.6, 0.5)", "#8033cc", "rgba(128,51,204,1)"},
		{"hsla", "hsla(270, 60%, 50%, 0.25)", "#8033cc40", "rgba(128,51,204,0.25)"},
		{"hsl slash", "hsl(270deg 60% 50% / 25%)", "#8033cc40", "rgba(128,51,204,0.25)"},
		{"hsl negative hue", "hsl(-90, 60%, 50%)", "#8033cc", "rgba(128,51,204,1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString(%q) error: %v", tt.input, err)
			}
			if got.Hex != tt.hex {
				t.Errorf("ParseString(%q).Hex = %q, want %q", tt.input, got.Hex, tt.hex)
			}
			if got.RGBA != tt.rgba {
				t.Errorf("ParseString(%q).RGBA = %q, want %q", tt.input, got.RGBA, tt.rgba)
			}
		})
	}
}

func TestParseString_Names(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"red", "#ff0000"},
		{"RoyalBlue", "#4169e1"},
		{" white ", "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString(%q) error: %v", tt.input, err)
			}
			if got.Hex != tt.want {
				t.Errorf("ParseString(%q).Hex = %q, want %q", tt.input, got.Hex, tt.want)
			}
		})
	}
}

func TestParseString_Transparent(t *testing.T) {
	got, err := ParseString("transparent")
	if err != nil {
		t.Fatalf("ParseString(transparent) error: %v", err)
	}
	if got.RGBA != "rgba(0,0,0,0)" {
		t.Errorf("RGBA = %q, want %q", got.RGBA, "rgba(0,0,0,0)")
	}
	if got.Hex != "#00000000" {
		t.Errorf("Hex = %q, want %q", got.Hex, "#00000000")
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"not-a-color", ErrUnrecognizedFormat},
		{"", ErrUnrecognizedFormat},
		{"#ff00f", ErrUnrecognizedFormat},
		{"#gggggg", ErrUnrecognizedFormat},
		{"ff0099", ErrUnrecognizedFormat},
		{"rgb(1, 2)", ErrUnrecognizedFormat},
		{"rgb(1, 2, 3, 4, 5)", ErrUnrecognizedFormat},
		{"rgb(a, b, c)", ErrUnrecognizedFormat},
		{"rgb(1 2 3 / 4 5)", ErrUnrecognizedFormat},
		{"rgb(1, 2, 3", ErrUnrecognizedFormat},
		{"hsl(120, 50%)", ErrUnrecognizedFormat},
		{"hsl(120, x, 50%)", ErrUnrecognizedFormat},
		{"hsl(banana, 50%, 50%)", ErrMalformedHue},
		{"rgb(1,,2,3)", ErrUnrecognizedFormat},
		{"rgb(,1,2,3)", ErrUnrecognizedFormat},
		{"rgb(1,2,3,)", ErrUnrecognizedFormat},
		{"rgb(1, 2 3)", ErrUnrecognizedFormat},
		{"rgb(1, 2, 3 / )", ErrUnrecognizedFormat},
		{"rgba(1, 2, 3, , 0.5)", ErrUnrecognizedFormat},
		{"hsl(120,,50%,50%)", ErrUnrecognizedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseString(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestParseHexDigits_Malformed(t *testing.T) {
	_, err := parseHexDigits("zz0000")
	if !errors.Is(err, ErrMalformedHex) {
		t.Errorf("parseHexDigits(zz0000) error = %v, want ErrMalformedHex", err)
	}
}

func TestParser_CustomNames(t *testing.T) {
	p := NewParser(NameMap{"brand": "#123456"})

	got, err := p.Parse("Brand")
	if err != nil {
		t.Fatalf("Parse(Brand) error: %v", err)
	}
	if got.Hex != "#123456" {
		t.Errorf("Parse(Brand).Hex = %q, want %q", got.Hex, "#123456")
	}

	if _, err := p.Parse("red"); !errors.Is(err, ErrUnrecognizedFormat) {
		t.Errorf("Parse(red) with custom table error = %v, want ErrUnrecognizedFormat", err)
	}
}
