package dataset

import (
	"strings"
	"time"

	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

// Snapshot is the whole persisted dataset. Callers get their own copy from
// Load and may mutate it freely before handing it back to Save.
type Snapshot struct {
	Users []userdomain.User
	Tasks []taskdomain.Task
}

func Empty() Snapshot {
	return Snapshot{
		Users: []userdomain.User{},
		Tasks: []taskdomain.Task{},
	}
}

func (s Snapshot) normalized() Snapshot {
	if s.Users == nil {
		s.Users = []userdomain.User{}
	}
	if s.Tasks == nil {
		s.Tasks = []taskdomain.Task{}
	}
	return s
}

func (s *Snapshot) UserIndex(id userdomain.ID) int {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// UserIndexByEmail matches case-insensitively so that two spellings of one
// address cannot register twice.
func (s *Snapshot) UserIndexByEmail(email string) int {
	email = strings.TrimSpace(email)
	for i := range s.Users {
		if strings.EqualFold(s.Users[i].Email, email) {
			return i
		}
	}
	return -1
}

// TaskIndex finds a task by id scoped to its owner. A task owned by someone
// else is reported as absent.
func (s *Snapshot) TaskIndex(userID userdomain.ID, taskID taskdomain.ID) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == taskID && s.Tasks[i].OwnedBy(userID) {
			return i
		}
	}
	return -1
}

func (s *Snapshot) TasksOf(userID userdomain.ID) []taskdomain.Task {
	out := []taskdomain.Task{}
	for _, t := range s.Tasks {
		if t.OwnedBy(userID) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Snapshot) RemoveTask(i int) {
	s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
}

// Clone copies the slices and every time pointer so that the result shares no
// memory with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Users: make([]userdomain.User, len(s.Users)),
		Tasks: make([]taskdomain.Task, len(s.Tasks)),
	}
	for i, u := range s.Users {
		u.LastCompletionDate = cloneTime(u.LastCompletionDate)
		out.Users[i] = u
	}
	for i, t := range s.Tasks {
		t.Deadline = cloneTime(t.Deadline)
		t.CompletedAt = cloneTime(t.CompletedAt)
		out.Tasks[i] = t
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
