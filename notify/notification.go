package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Severity represents notification severity
type Severity string

const (
	Success Severity = "success"
	Info    Severity = "info"
	Warn    Severity = "warn"
	Error   Severity = "error"
)

// DefaultLife is how long a notification stays visible
const DefaultLife = 3 * time.Second

// Notification represents a toast-style message
type Notification struct {
	ID       string        `json:"id"`
	Severity Severity      `json:"severity"`
	Summary  string        `json:"summary"`
	Detail   string        `json:"detail"`
	Life     time.Duration `json:"life"`
}

func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s: %s", n.Severity, n.Summary, n.Detail)
}

// New creates a notification with default life
func New(severity Severity, summary, detail string) Notification {
	return Notification{
		ID:       uuid.NewString(),
		Severity: severity,
		Summary:  summary,
		Detail:   detail,
		Life:     DefaultLife,
	}
}

func LoginSuccess(username string) Notification {
	return New(Success, "Success", fmt.Sprintf("Logged in as %q", username))
}

func LogoutSuccess() Notification {
	return New(Success, "Success", "Logged out successfully!")
}

// SessionExpired is emitted when the access token could not be refreshed
func SessionExpired() Notification {
	return New(Error, "Session expired", "Please login to your account to refresh your session")
}

// Unauthorized is emitted when navigation is denied by role
func Unauthorized(role fmt.Stringer) Notification {
	return New(Error, "Unauthorized by Role", fmt.Sprintf("You don't have the required role to access route (Your role: %s)", role))
}
