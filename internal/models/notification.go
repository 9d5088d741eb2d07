package models

import "time"

// NotificationKind classifies a command outcome message
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationWarning NotificationKind = "warning"
	NotificationInfo    NotificationKind = "info"
)

// NotificationKinds lists every kind
var NotificationKinds = []NotificationKind{
	NotificationSuccess,
	NotificationError,
	NotificationWarning,
	NotificationInfo,
}

// Label returns the display label for the kind
func (k NotificationKind) Label() string {
	switch k {
	case NotificationSuccess:
		return "Success"
	case NotificationError:
		return "Error"
	case NotificationWarning:
		return "Warning"
	case NotificationInfo:
		return "Information"
	}
	return string(k)
}

// Notification is a human-readable outcome message emitted after each command
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Command   string           `json:"command"`
	RecordIDs []string         `json:"recordIds,omitempty"`
	At        time.Time        `json:"at"`
}
