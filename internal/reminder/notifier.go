package reminder

import (
	"context"
	"strings"
	"time"

	"github.com/AlibekovAA/stride/internal/common/logger"
)

type Notifier interface {
	Name() string
	Notify(ctx context.Context, r UserReminders) error
}

// LogNotifier only writes what would have been mailed.
type LogNotifier struct {
	log      *logger.Logger
	location *time.Location
}

func NewLogNotifier(log *logger.Logger, location *time.Location) *LogNotifier {
	if location == nil {
		location = time.UTC
	}
	return &LogNotifier{log: log, location: location}
}

func (n *LogNotifier) Name() string { return "log" }

func (n *LogNotifier) Notify(ctx context.Context, r UserReminders) error {
	titles := make([]string, len(r.Tasks))
	for i, t := range r.Tasks {
		titles[i] = t.Title + " @ " + formatDeadline(t.Deadline, n.location)
	}
	n.log.WithFields(ctx, logger.Fields{
		"user_id": string(r.UserID),
		"email":   r.Email,
		"count":   len(r.Tasks),
		"action":  "reminder_logged",
	}).Infof("tasks due soon: %s", strings.Join(titles, "; "))
	return nil
}
