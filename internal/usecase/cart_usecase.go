package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"luxuryline/internal/domain/entity"
)

// CartUseCase holds one session's cart. Items keep insertion order, which is
// also the display order. Every mutation rewrites the whole slot.
type CartUseCase struct {
	mu        sync.Mutex
	sessionID string
	slotKey   string
	items     []entity.LineItem
	store     *PersistentStore[entity.LineItem]
	notifier  Notifier
}

// NewCartUseCase rehydrates the cart from its slot. Entries with a quantity
// below one are dropped.
func NewCartUseCase(ctx context.Context, sessionID string, store *PersistentStore[entity.LineItem], notifier Notifier) *CartUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}

	slotKey := SlotKey(sessionID, CartSlot)
	loaded := store.Load(ctx, slotKey)
	items := make([]entity.LineItem, 0, len(loaded))
	for _, item := range loaded {
		if item.Quantity < 1 || item.Key == "" {
			continue
		}
		items = append(items, item)
	}

	return &CartUseCase{
		sessionID: sessionID,
		slotKey:   slotKey,
		items:     items,
		store:     store,
		notifier:  notifier,
	}
}

// AddToCart merges into the line item with the same product, size and color,
// or appends a new one with quantity 1.
func (u *CartUseCase) AddToCart(ctx context.Context, product entity.Product, selectedSize, selectedColor string) (entity.LineItem, entity.Notification) {
	u.mu.Lock()
	defer u.mu.Unlock()

	key := entity.LineItemKey(product.ID, selectedSize, selectedColor)

	var (
		item         entity.LineItem
		notification entity.Notification
	)
	if idx := u.indexOf(key); idx >= 0 {
		u.items[idx].Quantity++
		item = u.items[idx]
		notification = entity.Notification{
			Title:       "Item Updated",
			Description: fmt.Sprintf("%s quantity updated in cart", product.Name),
		}
	} else {
		item = entity.LineItem{
			Key:           key,
			Product:       product.Clone(),
			SelectedSize:  selectedSize,
			SelectedColor: selectedColor,
			Quantity:      1,
		}
		u.items = append(u.items, item)
		notification = entity.Notification{
			Title:       "Added to Cart",
			Description: fmt.Sprintf("%s has been added to your cart", product.Name),
		}
	}

	u.persist(ctx)
	u.notifier.Notify(u.sessionID, notification)
	return item, notification
}

// RemoveFromCart returns nil when no item has the key; nothing is written or
// announced in that case.
func (u *CartUseCase) RemoveFromCart(ctx context.Context, key string) *entity.Notification {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.remove(ctx, key)
}

// UpdateQuantity sets the quantity in place. Zero or less removes the item.
func (u *CartUseCase) UpdateQuantity(ctx context.Context, key string, quantity int) (*entity.LineItem, *entity.Notification) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if quantity <= 0 {
		return nil, u.remove(ctx, key)
	}

	idx := u.indexOf(key)
	if idx < 0 {
		return nil, nil
	}
	u.items[idx].Quantity = quantity
	item := u.items[idx]
	u.persist(ctx)
	return &item, nil
}

// ClearCart empties the cart and removes its slot.
func (u *CartUseCase) ClearCart(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.items = []entity.LineItem{}
	u.store.Clear(ctx, u.slotKey)
}

// RemoveOrdered takes ordered quantities back out of the cart once an order
// is placed. Lines added or topped up after the order was priced keep the
// difference. An emptied cart loses its slot.
func (u *CartUseCase) RemoveOrdered(ctx context.Context, ordered []entity.LineItem) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, o := range ordered {
		idx := u.indexOf(o.Key)
		if idx < 0 {
			continue
		}
		if remaining := u.items[idx].Quantity - o.Quantity; remaining > 0 {
			u.items[idx].Quantity = remaining
			continue
		}
		u.items = append(u.items[:idx], u.items[idx+1:]...)
	}

	if len(u.items) == 0 {
		u.items = []entity.LineItem{}
		u.store.Clear(ctx, u.slotKey)
		return
	}
	u.persist(ctx)
}

func (u *CartUseCase) Items() []entity.LineItem {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]entity.LineItem, len(u.items))
	copy(out, u.items)
	return out
}

func (u *CartUseCase) GetCartTotal() decimal.Decimal {
	u.mu.Lock()
	defer u.mu.Unlock()

	return linesTotal(u.items)
}

// GetCartItemsCount is the sum of quantities, not the number of line items.
func (u *CartUseCase) GetCartItemsCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return linesCount(u.items)
}

func (u *CartUseCase) IsEmpty() bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	return len(u.items) == 0
}

func (u *CartUseCase) remove(ctx context.Context, key string) *entity.Notification {
	idx := u.indexOf(key)
	if idx < 0 {
		return nil
	}

	removed := u.items[idx]
	u.items = append(u.items[:idx], u.items[idx+1:]...)
	u.persist(ctx)

	notification := entity.Notification{
		Title:       "Removed from Cart",
		Description: fmt.Sprintf("%s has been removed from your cart", removed.Product.Name),
	}
	u.notifier.Notify(u.sessionID, notification)
	return &notification
}

func (u *CartUseCase) indexOf(key string) int {
	for i, item := range u.items {
		if item.Key == key {
			return i
		}
	}
	return -1
}

func (u *CartUseCase) persist(ctx context.Context) {
	u.store.Save(ctx, u.slotKey, u.items)
}
