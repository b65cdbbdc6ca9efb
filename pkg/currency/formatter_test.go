package currency

import "testing"

func TestFormat(t *testing.T) {
	testCases := []struct {
		amount float64
		code   string
		want   string
	}{
		{245, "USD", "$245"},
		{1234, "USD", "$1,234"},
		{1234567.4, "USD", "$1,234,567"},
		{310, "EUR", "€310"},
		{89, "GBP", "£89"},
		{1500000, "IDR", "IDR 1,500,000"},
		{-245, "USD", "-$245"},
		{0, "USD", "$0"},
	}

	for _, tc := range testCases {
		if got := Format(tc.amount, tc.code); got != tc.want {
			t.Errorf("Format(%v, %s) = %q, want %q", tc.amount, tc.code, got, tc.want)
		}
	}
}
