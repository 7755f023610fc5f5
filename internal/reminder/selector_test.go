package reminder

import (
	"testing"
	"time"

	"github.com/AlibekovAA/stride/internal/dataset"
	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

var now = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestDueSoon_WindowBoundaries(t *testing.T) {
	snap := dataset.Snapshot{
		Users: []userdomain.User{{ID: "u1", Name: "Ana", Email: "ana@example.com"}},
		Tasks: []taskdomain.Task{
			{ID: "in23h", UserID: "u1", Title: "due in 23h", Deadline: at(23 * time.Hour)},
			{ID: "in25h", UserID: "u1", Title: "due in 25h", Deadline: at(25 * time.Hour)},
			{ID: "done", UserID: "u1", Title: "done", Deadline: at(time.Hour), Completed: true},
			{ID: "past", UserID: "u1", Title: "overdue", Deadline: at(-time.Hour)},
			{ID: "now", UserID: "u1", Title: "exactly now", Deadline: at(0)},
			{ID: "edge", UserID: "u1", Title: "exactly 24h", Deadline: at(24 * time.Hour)},
			{ID: "none", UserID: "u1", Title: "no deadline"},
		},
	}

	got := DueSoon(snap, now, 24*time.Hour)

	if len(got) != 1 {
		t.Fatalf("expected one user, got %d", len(got))
	}
	tasks := got[0].Tasks
	if len(tasks) != 2 || tasks[0].TaskID != "in23h" || tasks[1].TaskID != "edge" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
	if got[0].Email != "ana@example.com" || got[0].Name != "Ana" {
		t.Errorf("expected user contact details, got %+v", got[0])
	}
}

func TestDueSoon_OmitsUsersAndKeepsOrder(t *testing.T) {
	snap := dataset.Snapshot{
		Users: []userdomain.User{
			{ID: "u1", Name: "Ana"},
			{ID: "u2", Name: "Ben"},
			{ID: "u3", Name: "Cy"},
		},
		Tasks: []taskdomain.Task{
			{ID: "c", UserID: "u3", Title: "c", Deadline: at(2 * time.Hour)},
			{ID: "a2", UserID: "u1", Title: "a2", Deadline: at(5 * time.Hour)},
			{ID: "a1", UserID: "u1", Title: "a1", Deadline: at(1 * time.Hour)},
		},
	}

	got := DueSoon(snap, now, 24*time.Hour)

	if len(got) != 2 || got[0].UserID != "u1" || got[1].UserID != "u3" {
		t.Fatalf("expected u1 then u3, got %+v", got)
	}
	if got[0].Tasks[0].TaskID != "a1" || got[0].Tasks[1].TaskID != "a2" {
		t.Errorf("expected tasks ordered by deadline, got %+v", got[0].Tasks)
	}
}

func TestDueSoon_EmptySnapshot(t *testing.T) {
	got := DueSoon(dataset.Empty(), now, 0)

	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
}
