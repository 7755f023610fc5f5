package service

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNormalizeMinutes(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{nil, 0},
		{25, 25},
		{25.9, 25},
		{-3, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{"45", 45},
		{" 12.5 ", 12},
		{"abc", 0},
		{"", 0},
		{json.Number("7"), 7},
		{[]int{1}, 0},
	}
	for _, tc := range cases {
		if got := NormalizeMinutes(tc.in); got != tc.want {
			t.Errorf("NormalizeMinutes(%#v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
