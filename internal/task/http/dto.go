package http

import (
	"strings"
	"time"

	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	"github.com/AlibekovAA/stride/internal/task/service"
)

type createTaskRequest struct {
	Title           string  `json:"title"`
	Deadline        *string `json:"deadline"`
	RequiredMinutes any     `json:"requiredMinutes"`
}

type taskResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Title           string     `json:"title"`
	Deadline        *time.Time `json:"deadline"`
	RequiredMinutes int        `json:"requiredMinutes"`
	Completed       bool       `json:"completed"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt"`
}

type streakResponse struct {
	Streak             int        `json:"streak"`
	LastCompletionDate *time.Time `json:"lastCompletionDate"`
}

type completeResponse struct {
	Message string         `json:"message"`
	Todo    taskResponse   `json:"todo"`
	User    streakResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toTaskResponse(t taskdomain.Task) taskResponse {
	return taskResponse{
		ID:              string(t.ID),
		UserID:          string(t.UserID),
		Title:           t.Title,
		Deadline:        t.Deadline,
		RequiredMinutes: t.RequiredMinutes,
		Completed:       t.Completed,
		CreatedAt:       t.CreatedAt,
		CompletedAt:     t.CompletedAt,
	}
}

func toTaskResponses(tasks []taskdomain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toCompleteResponse(res service.CompleteResult) completeResponse {
	msg := "Marked complete"
	if res.AlreadyCompleted {
		msg = "Already completed"
	}
	return completeResponse{
		Message: msg,
		Todo:    toTaskResponse(res.Task),
		User: streakResponse{
			Streak:             res.Streak,
			LastCompletionDate: res.LastCompletionDate,
		},
	}
}

// Layouts accepted for deadlines besides RFC 3339. They carry no offset and
// are read in the configured location.
var localDeadlineLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDeadline(raw *string, loc *time.Location) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}
	for _, layout := range localDeadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	return nil, service.ErrInvalidDeadline
}
