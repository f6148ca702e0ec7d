package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"R$ 1.234,56", "1234.56"},
		{"1234,56", "1234.56"},
		{"1234.56", "1234.56"},
		{"R$ 0,01", "0.01"},
		{"120,00", "120"},
		{"-1.000,50", "-1000.5"},
		{"2.000.000,00", "2000000"},
	}

	for _, tc := range tests {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
		}
		if want, _ := decimal.NewFromString(tc.want); !got.Equal(want) {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "R$ ", "abc", "12,34,56"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1234.56", "1.234,56"},
		{"70", "70,00"},
		{"0.5", "0,50"},
		{"-1000.5", "-1.000,50"},
		{"112000", "112.000,00"},
		{"2000000", "2.000.000,00"},
	}

	for _, tc := range tests {
		d, _ := decimal.NewFromString(tc.in)
		if got := Format(d); got != tc.want {
			t.Errorf("Format(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"1.234,56", "70,00", "120,00", "32.000,00"} {
		d, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got := Format(d); got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	t.Parallel()

	d, _ := decimal.NewFromString("70")
	if got := FormatBRL(d); got != "R$ 70,00" {
		t.Errorf("FormatBRL = %q", got)
	}
}
