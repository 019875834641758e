package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type role string

func (r role) String() string { return string(r) }

func TestNotifications(t *testing.T) {
	var testCases = []struct {
		description  string
		notification Notification
		severity     Severity
		summary      string
		detail       string
	}{
		{description: "login", notification: LoginSuccess("bob"), severity: Success, summary: "Success", detail: `Logged in as "bob"`},
		{description: "logout", notification: LogoutSuccess(), severity: Success, summary: "Success", detail: "Logged out successfully!"},
		{description: "expired", notification: SessionExpired(), severity: Error, summary: "Session expired", detail: "Please login to your account to refresh your session"},
		{description: "unauthorized", notification: Unauthorized(role("USER")), severity: Error, summary: "Unauthorized by Role", detail: "You don't have the required role to access route (Your role: USER)"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.severity, testCase.notification.Severity, testCase.description)
		assert.Equal(t, testCase.summary, testCase.notification.Summary, testCase.description)
		assert.Equal(t, testCase.detail, testCase.notification.Detail, testCase.description)
		assert.Equal(t, DefaultLife, testCase.notification.Life, testCase.description)
		assert.NotEmpty(t, testCase.notification.ID, testCase.description)
	}
}

func TestQueue(t *testing.T) {
	queue := NewQueue(2)
	queue.Notify(New(Info, "1", ""))
	queue.Notify(New(Info, "2", ""))
	queue.Notify(New(Info, "3", ""))
	assert.Equal(t, 2, queue.Len())
	items := queue.Drain()
	if assert.Len(t, items, 2) {
		assert.Equal(t, "2", items[0].Summary)
		assert.Equal(t, "3", items[1].Summary)
	}
	assert.Equal(t, 0, queue.Len())
}

func TestMulti(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	queue := NewQueue(0)
	notifier := Multi(queue, nil, NewLogger(zap.New(core)))
	notifier.Notify(SessionExpired())
	assert.Equal(t, 1, queue.Len())
	assert.Equal(t, 1, logs.FilterMessage("notification").Len())
	Nop.Notify(SessionExpired())
}
