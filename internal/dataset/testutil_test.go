package dataset

import (
	"io"
	"time"

	"github.com/AlibekovAA/stride/internal/common/logger"
	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "debug")
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func sampleSnapshot() Snapshot {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC)

	return Snapshot{
		Users: []userdomain.User{
			{ID: "u1", Name: "Ana", Email: "ana@example.com", PasswordHash: "h1", Streak: 2, LastCompletionDate: &last},
			{ID: "u2", Name: "Ben", Email: "ben@example.com", PasswordHash: "h2"},
		},
		Tasks: []taskdomain.Task{
			{ID: "t1", UserID: "u1", Title: "write report", Deadline: timePtr(created.Add(48 * time.Hour)), RequiredMinutes: 30, CreatedAt: created},
			{ID: "t2", UserID: "u1", Title: "stretch", RequiredMinutes: 0, Completed: true, CreatedAt: created.Add(time.Hour), CompletedAt: timePtr(created.Add(2 * time.Hour))},
			{ID: "t3", UserID: "u2", Title: "groceries", CreatedAt: created.Add(3 * time.Hour)},
		},
	}
}

// equalSnapshots compares instants rather than time.Time values, since SQL
// backends hand back times in UTC.
func equalSnapshots(a, b Snapshot) bool {
	if len(a.Users) != len(b.Users) || len(a.Tasks) != len(b.Tasks) {
		return false
	}
	for i := range a.Users {
		x, y := a.Users[i], b.Users[i]
		if x.ID != y.ID || x.Name != y.Name || x.Email != y.Email || x.PasswordHash != y.PasswordHash || x.Streak != y.Streak {
			return false
		}
		if !equalTimePtr(x.LastCompletionDate, y.LastCompletionDate) {
			return false
		}
	}
	for i := range a.Tasks {
		x, y := a.Tasks[i], b.Tasks[i]
		if x.ID != y.ID || x.UserID != y.UserID || x.Title != y.Title || x.RequiredMinutes != y.RequiredMinutes || x.Completed != y.Completed {
			return false
		}
		if !x.CreatedAt.Equal(y.CreatedAt) || !equalTimePtr(x.Deadline, y.Deadline) || !equalTimePtr(x.CompletedAt, y.CompletedAt) {
			return false
		}
	}
	return true
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
