package reminder

import (
	"sort"
	"time"

	"github.com/AlibekovAA/stride/internal/common/constants"
	"github.com/AlibekovAA/stride/internal/dataset"
	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

const DefaultWindow = constants.DefaultReminderWindow

type Reminder struct {
	TaskID   taskdomain.ID
	Title    string
	Deadline time.Time
}

type UserReminders struct {
	UserID userdomain.ID
	Name   string
	Email  string
	Tasks  []Reminder
}

// DueSoon lists, per user, the open tasks whose deadline falls in
// (now, now+window]. Users with nothing due are left out. Users keep their
// snapshot order and each user's tasks are ordered by deadline.
func DueSoon(snap dataset.Snapshot, now time.Time, window time.Duration) []UserReminders {
	if window <= 0 {
		window = DefaultWindow
	}

	byUser := make(map[userdomain.ID][]Reminder)
	for _, t := range snap.Tasks {
		if !t.DueWithin(now, window) {
			continue
		}
		byUser[t.UserID] = append(byUser[t.UserID], Reminder{
			TaskID:   t.ID,
			Title:    t.Title,
			Deadline: *t.Deadline,
		})
	}

	out := []UserReminders{}
	for _, u := range snap.Users {
		tasks := byUser[u.ID]
		if len(tasks) == 0 {
			continue
		}
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Deadline.Before(tasks[j].Deadline)
		})
		out = append(out, UserReminders{
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Tasks:  tasks,
		})
	}
	return out
}
