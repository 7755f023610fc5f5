package domain

import (
	"time"

	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

type ID string

type Task struct {
	ID              ID
	UserID          userdomain.ID
	Title           string
	Deadline        *time.Time
	RequiredMinutes int
	Completed       bool
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

func (t Task) OwnedBy(userID userdomain.ID) bool {
	return t.UserID == userID
}

// DueWithin reports whether an open task has a deadline in (now, now+window].
func (t Task) DueWithin(now time.Time, window time.Duration) bool {
	if t.Completed || t.Deadline == nil {
		return false
	}
	return t.Deadline.After(now) && !t.Deadline.After(now.Add(window))
}

type SortKey string

const (
	SortByCreatedAt       SortKey = ""
	SortByDeadline        SortKey = "deadline"
	SortByRequiredMinutes SortKey = "availableMinutes"
)

func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByDeadline:
		return SortByDeadline
	case SortByRequiredMinutes:
		return SortByRequiredMinutes
	default:
		return SortByCreatedAt
	}
}
