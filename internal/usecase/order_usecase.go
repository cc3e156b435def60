package usecase

import (
	"context"
	"sync"

	"luxuryline/internal/domain/entity"
	"luxuryline/pkg/errors"
)

// OrderHistoryUseCase keeps the orders a session has placed. The slot holds
// them oldest first; reads return newest first.
type OrderHistoryUseCase struct {
	mu      sync.Mutex
	slotKey string
	orders  []entity.OrderConfirmation
	store   *PersistentStore[entity.OrderConfirmation]
}

func NewOrderHistoryUseCase(ctx context.Context, sessionID string, store *PersistentStore[entity.OrderConfirmation]) *OrderHistoryUseCase {
	slotKey := SlotKey(sessionID, OrdersSlot)
	loaded := store.Load(ctx, slotKey)
	orders := make([]entity.OrderConfirmation, 0, len(loaded))
	for _, o := range loaded {
		if o.OrderNumber == "" {
			continue
		}
		orders = append(orders, o)
	}

	return &OrderHistoryUseCase{
		slotKey: slotKey,
		orders:  orders,
		store:   store,
	}
}

func (u *OrderHistoryUseCase) Record(ctx context.Context, order entity.OrderConfirmation) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.orders = append(u.orders, order)
	u.store.Save(ctx, u.slotKey, u.orders)
}

func (u *OrderHistoryUseCase) Orders() []entity.OrderConfirmation {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]entity.OrderConfirmation, len(u.orders))
	for i, o := range u.orders {
		out[len(u.orders)-1-i] = o
	}
	return out
}

// GetOrder returns the newest order with the number. Numbers only carry six
// timestamp digits, so an old order can share one.
func (u *OrderHistoryUseCase) GetOrder(orderNumber string) (entity.OrderConfirmation, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := len(u.orders) - 1; i >= 0; i-- {
		if u.orders[i].OrderNumber == orderNumber {
			return u.orders[i], nil
		}
	}
	return entity.OrderConfirmation{}, errors.NotFound("Order", nil)
}

func (u *OrderHistoryUseCase) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.orders)
}
