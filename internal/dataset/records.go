package dataset

import (
	"math"
	"time"

	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

type snapshotRecord struct {
	Users []userRecord `json:"users"`
	Tasks []taskRecord `json:"tasks"`
	// Todos is the key older db.json files used for tasks. It is read but
	// never written.
	Todos []taskRecord `json:"todos,omitempty"`
}

type userRecord struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"passwordHash"`
	Streak             int        `json:"streak"`
	LastCompletionDate *time.Time `json:"lastCompletionDate"`
}

type taskRecord struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Title           string     `json:"title"`
	Deadline        *time.Time `json:"deadline"`
	RequiredMinutes float64    `json:"requiredMinutes"`
	Completed       bool       `json:"completed"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt"`
}

func toRecord(s Snapshot) snapshotRecord {
	rec := snapshotRecord{
		Users: make([]userRecord, 0, len(s.Users)),
		Tasks: make([]taskRecord, 0, len(s.Tasks)),
	}
	for _, u := range s.Users {
		rec.Users = append(rec.Users, userRecord{
			ID:                 string(u.ID),
			Name:               u.Name,
			Email:              u.Email,
			PasswordHash:       u.PasswordHash,
			Streak:             u.Streak,
			LastCompletionDate: u.LastCompletionDate,
		})
	}
	for _, t := range s.Tasks {
		rec.Tasks = append(rec.Tasks, taskRecord{
			ID:              string(t.ID),
			UserID:          string(t.UserID),
			Title:           t.Title,
			Deadline:        t.Deadline,
			RequiredMinutes: float64(t.RequiredMinutes),
			Completed:       t.Completed,
			CreatedAt:       t.CreatedAt,
			CompletedAt:     t.CompletedAt,
		})
	}
	return rec
}

func fromRecord(rec snapshotRecord) Snapshot {
	tasks := rec.Tasks
	if len(tasks) == 0 && len(rec.Todos) > 0 {
		tasks = rec.Todos
	}

	s := Snapshot{
		Users: make([]userdomain.User, 0, len(rec.Users)),
		Tasks: make([]taskdomain.Task, 0, len(tasks)),
	}
	for _, u := range rec.Users {
		streak := u.Streak
		if streak < 0 {
			streak = 0
		}
		s.Users = append(s.Users, userdomain.User{
			ID:                 userdomain.ID(u.ID),
			Name:               u.Name,
			Email:              u.Email,
			PasswordHash:       u.PasswordHash,
			Streak:             streak,
			LastCompletionDate: u.LastCompletionDate,
		})
	}
	for _, t := range tasks {
		s.Tasks = append(s.Tasks, taskdomain.Task{
			ID:              taskdomain.ID(t.ID),
			UserID:          userdomain.ID(t.UserID),
			Title:           t.Title,
			Deadline:        t.Deadline,
			RequiredMinutes: wholeMinutes(t.RequiredMinutes),
			Completed:       t.Completed,
			CreatedAt:       t.CreatedAt,
			CompletedAt:     t.CompletedAt,
		})
	}
	return s
}

func wholeMinutes(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
