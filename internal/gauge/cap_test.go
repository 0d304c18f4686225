package gauge

import (
	"math/big"
	"testing"
)

func TestFormatCap(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{raw: "5000000000000000", want: "0.5%"},
		{raw: "200000000000000000", want: "20.0%"},
		{raw: "1000000000000000000", want: "100.0%"},
		{raw: "20000000000000000", want: "2.0%"},
		{raw: "1000000000000000", want: "0.1%"},
		{raw: "0", want: "0.0%"},
		{raw: "1", want: "1e-16%"},
		{raw: "15", want: "1.5e-15%"},
		{raw: "100000000000", want: "1e-05%"},
		{raw: "1000000000000", want: "0.0001%"},
		{raw: "100000000000000000000000000000000", want: "1e+16%"},
	}

	for _, tc := range cases {
		raw, ok := new(big.Int).SetString(tc.raw, 10)
		if !ok {
			t.Fatalf("bad fixture %s", tc.raw)
		}
		if got := FormatCap(raw); got != tc.want {
			t.Fatalf("FormatCap(%s) = %s, want %s", tc.raw, got, tc.want)
		}
	}

	if got := FormatCap(nil); got != "N/A" {
		t.Fatalf("nil cap = %s", got)
	}
}
