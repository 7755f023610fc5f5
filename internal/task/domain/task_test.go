package domain

import (
	"testing"
	"time"
)

func TestTask_DueWithin(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"in window", Task{Deadline: at(23 * time.Hour)}, true},
		{"exactly at window end", Task{Deadline: at(24 * time.Hour)}, true},
		{"beyond window", Task{Deadline: at(25 * time.Hour)}, false},
		{"exactly now", Task{Deadline: at(0)}, false},
		{"overdue", Task{Deadline: at(-time.Hour)}, false},
		{"no deadline", Task{}, false},
		{"completed", Task{Deadline: at(time.Hour), Completed: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.task.DueWithin(now, 24*time.Hour); got != tc.want {
				t.Errorf("DueWithin = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseSortKey(t *testing.T) {
	if ParseSortKey("deadline") != SortByDeadline {
		t.Error("expected deadline")
	}
	if ParseSortKey("availableMinutes") != SortByRequiredMinutes {
		t.Error("expected availableMinutes")
	}
	if ParseSortKey("title") != SortByCreatedAt || ParseSortKey("") != SortByCreatedAt {
		t.Error("unknown keys fall back to createdAt")
	}
}
