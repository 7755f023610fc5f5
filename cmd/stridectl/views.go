package main

import (
	"time"

	"github.com/AlibekovAA/stride/internal/dataset"
	"github.com/AlibekovAA/stride/internal/reminder"
	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
)

type dueTask struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Deadline string `yaml:"deadline"`
}

type dueUser struct {
	UserID string    `yaml:"userId"`
	Email  string    `yaml:"email"`
	Tasks  []dueTask `yaml:"tasks"`
}

type userSummary struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	Email              string `yaml:"email"`
	Streak             int    `yaml:"streak"`
	LastCompletionDate string `yaml:"lastCompletionDate,omitempty"`
	OpenTasks          int    `yaml:"openTasks"`
	CompletedTasks     int    `yaml:"completedTasks"`
}

type taskDump struct {
	ID              string `yaml:"id"`
	UserID          string `yaml:"userId"`
	Title           string `yaml:"title"`
	Deadline        string `yaml:"deadline,omitempty"`
	RequiredMinutes int    `yaml:"requiredMinutes"`
	Completed       bool   `yaml:"completed"`
	CreatedAt       string `yaml:"createdAt"`
	CompletedAt     string `yaml:"completedAt,omitempty"`
}

type datasetDump struct {
	Users []userSummary `yaml:"users"`
	Todos []taskDump    `yaml:"todos"`
}

func dueView(due []reminder.UserReminders, loc *time.Location) []dueUser {
	out := make([]dueUser, 0, len(due))
	for _, u := range due {
		tasks := make([]dueTask, 0, len(u.Tasks))
		for _, t := range u.Tasks {
			tasks = append(tasks, dueTask{
				ID:       string(t.TaskID),
				Title:    t.Title,
				Deadline: formatTime(&t.Deadline, loc),
			})
		}
		out = append(out, dueUser{UserID: string(u.UserID), Email: u.Email, Tasks: tasks})
	}
	return out
}

func usersView(snap dataset.Snapshot, loc *time.Location) []userSummary {
	out := make([]userSummary, 0, len(snap.Users))
	for _, u := range snap.Users {
		s := userSummary{
			ID:                 string(u.ID),
			Name:               u.Name,
			Email:              u.Email,
			Streak:             u.Streak,
			LastCompletionDate: formatTime(u.LastCompletionDate, loc),
		}
		for _, t := range snap.TasksOf(u.ID) {
			if t.Completed {
				s.CompletedTasks++
			} else {
				s.OpenTasks++
			}
		}
		out = append(out, s)
	}
	return out
}

func dumpView(snap dataset.Snapshot, loc *time.Location) datasetDump {
	todos := make([]taskDump, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		todos = append(todos, toTaskDump(t, loc))
	}
	return datasetDump{Users: usersView(snap, loc), Todos: todos}
}

func toTaskDump(t taskdomain.Task, loc *time.Location) taskDump {
	return taskDump{
		ID:              string(t.ID),
		UserID:          string(t.UserID),
		Title:           t.Title,
		Deadline:        formatTime(t.Deadline, loc),
		RequiredMinutes: t.RequiredMinutes,
		Completed:       t.Completed,
		CreatedAt:       formatTime(&t.CreatedAt, loc),
		CompletedAt:     formatTime(t.CompletedAt, loc),
	}
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(time.RFC3339)
}
