package airports

import "testing"

func TestResolve(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"NYC", "NYC"},
		{"lax", "LAX"},
		{"New York", "NYC"},
		{"  san francisco ", "SFO"},
		{"LAS VEGAS", "LAS"},
		{"Timbuktu", "TIMBUKTU"},
	}

	for _, tc := range testCases {
		if got := Resolve(tc.in); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsCode(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{"NYC", true},
		{"LAX", true},
		{"nyc", false},
		{"NEWYORK", false},
		{"N1C", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := IsCode(tc.in); got != tc.want {
			t.Errorf("IsCode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
