package notifications

import "github.com/thenoetrevino/mytasks/internal/feature"

// Severity represents the severity level of a notification
type Severity int

const (
	Info Severity = iota
	Success
	Error
)

// Notification is a message shown in the status line until dismissed
type Notification struct {
	Severity Severity
	Message  string
}

// FromEffect converts a ShowError or ShowSuccess effect to a notification.
// ok is false for any other effect.
func FromEffect(e feature.Effect) (n Notification, ok bool) {
	switch v := e.(type) {
	case feature.ShowError:
		return Notification{Severity: Error, Message: v.Message.Resolve()}, true
	case feature.ShowSuccess:
		return Notification{Severity: Success, Message: v.Message.Resolve()}, true
	}
	return Notification{}, false
}
