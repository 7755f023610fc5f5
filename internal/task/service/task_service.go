package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AlibekovAA/stride/internal/common/clock"
	"github.com/AlibekovAA/stride/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/stride/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/stride/internal/common/errors"
	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/dataset"
	"github.com/AlibekovAA/stride/internal/streak"
	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

type TaskService struct {
	writer      *dataset.Writer
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	location    *time.Location
	log         *logger.Logger
}

type TaskServiceDeps struct {
	Writer      *dataset.Writer
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

type TaskServiceConfig struct {
	// Location decides where calendar days begin for streak accounting.
	Location *time.Location
}

func NewTaskService(deps TaskServiceDeps, cfg TaskServiceConfig) *TaskService {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	if deps.IDGenerator == nil {
		deps.IDGenerator = commoncrypto.NewUUIDGenerator()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &TaskService{
		writer:      deps.Writer,
		idGenerator: deps.IDGenerator,
		clock:       deps.Clock,
		location:    cfg.Location,
		log:         deps.Log,
	}
}

type CreateInput struct {
	Title           string
	Deadline        *time.Time
	RequiredMinutes any
}

type ListOptions struct {
	AvailableMinutes string
	Sort             string
}

type CompleteResult struct {
	Task               taskdomain.Task
	Streak             int
	LastCompletionDate *time.Time
	AlreadyCompleted   bool
}

func (s *TaskService) Create(ctx context.Context, userID userdomain.ID, input CreateInput) (taskdomain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "task_create_validation_failed",
		}).Warn("task create failed: empty title")
		return taskdomain.Task{}, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.TitleMaxLength {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "task_create_validation_failed",
		}).Warn("task create failed: title too long")
		return taskdomain.Task{}, ErrTitleTooLong
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "task_create_id_generation_failed",
		}).Errorf("task create failed: id generation error: %v", err)
		return taskdomain.Task{}, commonerrors.ErrInternalError.WithCause(err)
	}

	task := taskdomain.Task{
		ID:              taskdomain.ID(id),
		UserID:          userID,
		Title:           title,
		Deadline:        input.Deadline,
		RequiredMinutes: NormalizeMinutes(input.RequiredMinutes),
		CreatedAt:       s.clock.Now(),
	}

	err = s.writer.Update(ctx, func(snap *dataset.Snapshot) (bool, error) {
		if snap.UserIndex(userID) < 0 {
			return false, commonerrors.ErrUserNotFound
		}
		snap.Tasks = append(snap.Tasks, task)
		return true, nil
	})
	if err != nil {
		s.logFailure(ctx, userID, "", "task_create_failed", err)
		return taskdomain.Task{}, err
	}

	incrementTasksCreated()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(userID),
		"task_id": string(task.ID),
		"action":  "task_create_success",
	}).Info("task created")

	return task, nil
}

// List returns the caller's tasks. An availableMinutes value above zero keeps
// only tasks that fit into it; unknown sort keys fall back to newest first.
func (s *TaskService) List(ctx context.Context, userID userdomain.ID, opts ListOptions) []taskdomain.Task {
	snap := s.writer.Read(ctx)
	tasks := snap.TasksOf(userID)

	if limit, ok := parseAvailableMinutes(opts.AvailableMinutes); ok {
		filtered := tasks[:0]
		for _, t := range tasks {
			if float64(t.RequiredMinutes) <= limit {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	sortTasks(tasks, taskdomain.ParseSortKey(opts.Sort))

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(userID),
		"count":   len(tasks),
		"action":  "task_list",
	}).Debug("tasks listed")

	return tasks
}

// Complete marks the task done and advances the owner's streak. Completing an
// already completed task changes nothing and reports the current streak.
func (s *TaskService) Complete(ctx context.Context, userID userdomain.ID, taskID taskdomain.ID) (CompleteResult, error) {
	var (
		result  CompleteResult
		outcome streak.Result
	)

	err := s.writer.Update(ctx, func(snap *dataset.Snapshot) (bool, error) {
		ti := snap.TaskIndex(userID, taskID)
		if ti < 0 {
			return false, ErrTaskNotFound
		}
		ui := snap.UserIndex(userID)
		if ui < 0 {
			return false, commonerrors.ErrUserNotFound
		}

		task := &snap.Tasks[ti]
		user := &snap.Users[ui]

		if task.Completed {
			result = CompleteResult{
				Task:               *task,
				Streak:             user.Streak,
				LastCompletionDate: user.LastCompletionDate,
				AlreadyCompleted:   true,
			}
			return false, nil
		}

		now := s.clock.Now()
		outcome = streak.Advance(user.Streak, user.LastCompletionDate, now, s.location)

		task.Completed = true
		task.CompletedAt = &now
		user.Streak = outcome.Streak
		last := outcome.LastCompletionDate
		user.LastCompletionDate = &last

		result = CompleteResult{
			Task:               *task,
			Streak:             user.Streak,
			LastCompletionDate: user.LastCompletionDate,
		}
		return true, nil
	})
	if err != nil {
		s.logFailure(ctx, userID, taskID, "task_complete_failed", err)
		return CompleteResult{}, err
	}

	if result.AlreadyCompleted {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"task_id": string(taskID),
			"action":  "task_complete_noop",
		}).Info("task already completed")
		return result, nil
	}

	incrementTasksCompleted(outcome.Outcome)

	entry := s.log.WithFields(ctx, logger.Fields{
		"user_id": string(userID),
		"task_id": string(taskID),
		"streak":  result.Streak,
		"outcome": string(outcome.Outcome),
		"action":  "task_complete_success",
	})
	if outcome.Outcome == streak.Skewed {
		entry.Warnf("previous completion is %d day(s) in the future, streak restarted", -outcome.DayDiff)
	} else {
		entry.Info("task completed")
	}

	return result, nil
}

// Delete removes the task. The owner's streak is left as it is.
func (s *TaskService) Delete(ctx context.Context, userID userdomain.ID, taskID taskdomain.ID) error {
	err := s.writer.Update(ctx, func(snap *dataset.Snapshot) (bool, error) {
		i := snap.TaskIndex(userID, taskID)
		if i < 0 {
			return false, ErrTaskNotFound
		}
		snap.RemoveTask(i)
		return true, nil
	})
	if err != nil {
		s.logFailure(ctx, userID, taskID, "task_delete_failed", err)
		return err
	}

	incrementTasksDeleted()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(userID),
		"task_id": string(taskID),
		"action":  "task_delete_success",
	}).Info("task deleted")

	return nil
}

func (s *TaskService) logFailure(ctx context.Context, userID userdomain.ID, taskID taskdomain.ID, action string, err error) {
	fields := logger.Fields{
		"user_id": string(userID),
		"action":  action,
	}
	if taskID != "" {
		fields["task_id"] = string(taskID)
	}

	entry := s.log.WithFields(ctx, fields)
	if errors.Is(err, commonerrors.ErrStoreWriteFailed) || !commonerrors.IsDomainError(err) {
		entry.Errorf("%s: %v", action, err)
		return
	}
	entry.Warnf("%s: %v", action, err)
}
