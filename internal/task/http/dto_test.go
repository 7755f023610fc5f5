package http

import (
	"errors"
	"testing"
	"time"

	"github.com/AlibekovAA/stride/internal/task/service"
)

func TestParseDeadline(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	str := func(s string) *string { return &s }

	cases := []struct {
		in   *string
		want *time.Time
	}{
		{nil, nil},
		{str(""), nil},
		{str("2024-01-11T08:00:00.000Z"), timePtr(time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC))},
		{str("2024-01-11T17:00:00+09:00"), timePtr(time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC))},
		{str("2024-01-11T17:00"), timePtr(time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC))},
		{str("2024-01-12"), timePtr(time.Date(2024, 1, 11, 15, 0, 0, 0, time.UTC))},
	}
	for _, tc := range cases {
		got, err := parseDeadline(tc.in, tokyo)
		if err != nil {
			t.Fatalf("parseDeadline(%v): %v", tc.in, err)
		}
		if (got == nil) != (tc.want == nil) || (got != nil && !got.Equal(*tc.want)) {
			t.Errorf("parseDeadline(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := parseDeadline(str("soon"), tokyo); !errors.Is(err, service.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
