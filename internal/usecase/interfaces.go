package usecase

import (
	"context"

	"luxuryline/internal/domain/entity"
)

// Notifier receives the toast content produced by store mutations. It only
// gets content; rendering belongs to whoever implements it.
type Notifier interface {
	Notify(sessionID string, notification entity.Notification)
}

// ConfirmationMailer sends the order confirmation after checkout completes.
type ConfirmationMailer interface {
	SendOrderConfirmation(ctx context.Context, shipping entity.ShippingInfo, order entity.OrderConfirmation) error
}

// OrderRecorder keeps placed orders.
type OrderRecorder interface {
	Record(ctx context.Context, order entity.OrderConfirmation)
}

type NotifierFunc func(sessionID string, notification entity.Notification)

func (f NotifierFunc) Notify(sessionID string, notification entity.Notification) {
	f(sessionID, notification)
}

// MultiNotifier fans a notification out to several notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(sessionID string, notification entity.Notification) {
	for _, n := range m {
		if n != nil {
			n.Notify(sessionID, notification)
		}
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, entity.Notification) {}
