package extract

import "testing"

func TestExtractFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"+1.23%", 1.23},
		{"-4.56%", -4.56},
		{"12.3亿", 12.3},
		{"3.5亿元", 3.5},
		{"100", 100},
		{"-", 0.0},
		{"--", 0.0},
		{"None", 0.0},
		{"", 0.0},
		{"abc", 0.0},
		{"净流入-8.21亿", -8.21},
	}
	for _, c := range cases {
		got := ExtractFloat(c.in)
		if got != c.want {
			t.Errorf("ExtractFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestHasNumeral(t *testing.T) {
	if !HasNumeral("12.3亿") {
		t.Error("expected numeral in '12.3亿'")
	}
	if HasNumeral("--") {
		t.Error("expected no numeral in '--'")
	}
	if HasNumeral("名称") {
		t.Error("expected no numeral in header text")
	}
}
