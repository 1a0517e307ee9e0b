package events

import (
	"time"

	"github.com/google/uuid"
)

// Kind separates success toasts from error toasts.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is what the UI layer shows after an action completes.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail,omitempty"`
	Code      string    `json:"code,omitempty"`
	Signature string    `json:"signature,omitempty"`
	Time      time.Time `json:"time"`
}

func newNotification(kind Kind, action, message string) Notification {
	return Notification{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Kind:    kind,
		Action:  action,
		Message: message,
		Time:    time.Now(),
	}
}

// NewSuccess builds a success notification; signature may be empty.
func NewSuccess(action, message, signature string) Notification {
	n := newNotification(KindSuccess, action, message)
	n.Signature = signature
	return n
}

// NewFailure builds an error notification carrying the error code.
func NewFailure(action, code, message, detail string) Notification {
	n := newNotification(KindError, action, message)
	n.Code = code
	n.Detail = detail
	return n
}
