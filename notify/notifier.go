package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Notifier delivers notifications
type Notifier interface {
	Notify(notification Notification)
}

// Func adapts a function to Notifier
type Func func(notification Notification)

func (f Func) Notify(notification Notification) { f(notification) }

// Nop discards notifications
var Nop Notifier = Func(func(Notification) {})

// Queue collects notifications up to capacity, dropping the oldest ones
type Queue struct {
	mux      sync.Mutex
	capacity int
	items    []Notification
}

func (q *Queue) Notify(notification Notification) {
	q.mux.Lock()
	defer q.mux.Unlock()
	q.items = append(q.items, notification)
	if q.capacity > 0 && len(q.items) > q.capacity {
		q.items = q.items[len(q.items)-q.capacity:]
	}
}

// Drain returns and removes queued notifications
func (q *Queue) Drain() []Notification {
	q.mux.Lock()
	defer q.mux.Unlock()
	ret := q.items
	q.items = nil
	return ret
}

// Len returns number of queued notifications
func (q *Queue) Len() int {
	q.mux.Lock()
	defer q.mux.Unlock()
	return len(q.items)
}

// NewQueue creates a queue, capacity <= 0 means unbounded
func NewQueue(capacity int) *Queue {
	return &Queue{capacity: capacity}
}

// Logger writes notifications to a zap logger
type Logger struct {
	logger *zap.Logger
}

func (l *Logger) Notify(notification Notification) {
	fields := []zap.Field{
		zap.String("summary", notification.Summary),
		zap.String("detail", notification.Detail),
		zap.String("id", notification.ID),
	}
	switch notification.Severity {
	case Error:
		l.logger.Error("notification", fields...)
	case Warn:
		l.logger.Warn("notification", fields...)
	default:
		l.logger.Info("notification", fields...)
	}
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger}
}

type multi []Notifier

func (m multi) Notify(notification Notification) {
	for _, n := range m {
		n.Notify(notification)
	}
}

// Multi fans out notifications, nil notifiers are skipped
func Multi(notifiers ...Notifier) Notifier {
	var ret multi
	for _, n := range notifiers {
		if n != nil {
			ret = append(ret, n)
		}
	}
	return ret
}
