package usecase

import (
	"context"
	"fmt"
	"sync"

	"luxuryline/internal/domain/entity"
)

// WishlistUseCase holds one session's wishlist: distinct products in the
// order they were added.
type WishlistUseCase struct {
	mu        sync.Mutex
	sessionID string
	slotKey   string
	items     []entity.Product
	store     *PersistentStore[entity.Product]
	notifier  Notifier
}

// NewWishlistUseCase rehydrates the wishlist. Duplicate ids in a stored slot
// collapse to their first occurrence.
func NewWishlistUseCase(ctx context.Context, sessionID string, store *PersistentStore[entity.Product], notifier Notifier) *WishlistUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}

	slotKey := SlotKey(sessionID, WishlistSlot)
	loaded := store.Load(ctx, slotKey)
	seen := make(map[int]bool, len(loaded))
	items := make([]entity.Product, 0, len(loaded))
	for _, p := range loaded {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		items = append(items, p)
	}

	return &WishlistUseCase{
		sessionID: sessionID,
		slotKey:   slotKey,
		items:     items,
		store:     store,
		notifier:  notifier,
	}
}

// AddToWishlist reports added=false when the product is already listed. The
// stored snapshot is left as it was.
func (u *WishlistUseCase) AddToWishlist(ctx context.Context, product entity.Product) (bool, entity.Notification) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.indexOf(product.ID) >= 0 {
		notification := entity.Notification{
			Title:       "Already in Wishlist",
			Description: fmt.Sprintf("%s is already in your wishlist", product.Name),
		}
		u.notifier.Notify(u.sessionID, notification)
		return false, notification
	}

	u.items = append(u.items, product.Clone())
	u.store.Save(ctx, u.slotKey, u.items)

	notification := entity.Notification{
		Title:       "Added to Wishlist",
		Description: fmt.Sprintf("%s has been added to your wishlist", product.Name),
	}
	u.notifier.Notify(u.sessionID, notification)
	return true, notification
}

// RemoveFromWishlist returns nil when the product is not listed.
func (u *WishlistUseCase) RemoveFromWishlist(ctx context.Context, productID int) *entity.Notification {
	u.mu.Lock()
	defer u.mu.Unlock()

	idx := u.indexOf(productID)
	if idx < 0 {
		return nil
	}

	removed := u.items[idx]
	u.items = append(u.items[:idx], u.items[idx+1:]...)
	u.store.Save(ctx, u.slotKey, u.items)

	notification := entity.Notification{
		Title:       "Removed from Wishlist",
		Description: fmt.Sprintf("%s has been removed from your wishlist", removed.Name),
	}
	u.notifier.Notify(u.sessionID, notification)
	return &notification
}

func (u *WishlistUseCase) IsInWishlist(productID int) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.indexOf(productID) >= 0
}

func (u *WishlistUseCase) Items() []entity.Product {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]entity.Product, len(u.items))
	copy(out, u.items)
	return out
}

func (u *WishlistUseCase) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return len(u.items)
}

func (u *WishlistUseCase) indexOf(productID int) int {
	for i, p := range u.items {
		if p.ID == productID {
			return i
		}
	}
	return -1
}
