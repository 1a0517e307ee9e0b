package events

import (
	"fmt"

	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/logx"
)

// Notifier is the publishing side used by services. A nil bus only logs.
type Notifier struct {
	bus *EventBus
}

func NewNotifier(bus *EventBus) *Notifier {
	return &Notifier{bus: bus}
}

// Success logs and publishes a success notification.
func (n *Notifier) Success(action, message, signature string) Notification {
	note := NewSuccess(action, message, signature)
	logx.Info("NOTIFY", fmt.Sprintf("%s succeeded | %s | signature=%s", action, message, signature))
	n.publish(note)
	return note
}

// Failure logs err and publishes it with its code and user-facing message.
func (n *Notifier) Failure(action string, err error) Notification {
	code := errors.CodeOf(err)
	message := errors.DefaultMessage(code)
	detail := err.Error()
	if we, ok := errors.AsWalletError(err); ok {
		message = we.Message
		detail = we.Detail
	}
	note := NewFailure(action, string(code), message, detail)
	logx.Error("NOTIFY", fmt.Sprintf("%s failed | code=%s | %v", action, code, err))
	n.publish(note)
	return note
}

func (n *Notifier) publish(note Notification) {
	if n == nil || n.bus == nil {
		return
	}
	n.bus.Publish(note)
}
