package service

import (
	"sort"

	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
)

func sortTasks(tasks []taskdomain.Task, key taskdomain.SortKey) {
	switch key {
	case taskdomain.SortByDeadline:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].Deadline, tasks[j].Deadline
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case taskdomain.SortByRequiredMinutes:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].RequiredMinutes < tasks[j].RequiredMinutes
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}
