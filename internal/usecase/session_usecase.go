package usecase

import (
	"context"
	"sync"
	"time"

	"luxuryline/internal/domain/entity"
	"luxuryline/internal/domain/repository"
	"luxuryline/pkg/errors"
	"luxuryline/pkg/logger"
)

// Session is the server-side stand-in for one browser tab: its cart, its
// wishlist, the orders it placed and, once started, its checkout.
type Session struct {
	ID       string
	Cart     *CartUseCase
	Wishlist *WishlistUseCase
	Orders   *OrderHistoryUseCase

	mu       sync.Mutex
	checkout *CheckoutUseCase
	lastSeen time.Time
}

// SessionUseCase builds sessions on first use, rehydrating their stores from
// the slot store, and evicts idle ones from memory. Evicted sessions keep
// their slots and are rebuilt on the next request.
type SessionUseCase struct {
	mu       sync.Mutex
	sessions map[string]*Session

	carts     *PersistentStore[entity.LineItem]
	wishlists *PersistentStore[entity.Product]
	orders    *PersistentStore[entity.OrderConfirmation]
	notifier  Notifier
	checkout  CheckoutDeps
	idleTTL   time.Duration
	now       func() time.Time
}

func NewSessionUseCase(slots repository.SlotStore, notifier Notifier, checkout CheckoutDeps, idleTTL time.Duration) *SessionUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if checkout.Notifier == nil {
		checkout.Notifier = notifier
	}

	return &SessionUseCase{
		sessions:  make(map[string]*Session),
		carts:     NewPersistentStore[entity.LineItem](slots),
		wishlists: NewPersistentStore[entity.Product](slots),
		orders:    NewPersistentStore[entity.OrderConfirmation](slots),
		notifier:  notifier,
		checkout:  checkout,
		idleTTL:   idleTTL,
		now:       time.Now,
	}
}

func (u *SessionUseCase) Get(ctx context.Context, sessionID string) *Session {
	u.mu.Lock()
	defer u.mu.Unlock()

	if s, ok := u.sessions[sessionID]; ok {
		s.touch(u.now())
		return s
	}

	s := &Session{
		ID:       sessionID,
		Cart:     NewCartUseCase(ctx, sessionID, u.carts, u.notifier),
		Wishlist: NewWishlistUseCase(ctx, sessionID, u.wishlists, u.notifier),
		Orders:   NewOrderHistoryUseCase(ctx, sessionID, u.orders),
		lastSeen: u.now(),
	}
	u.sessions[sessionID] = s
	logger.Debug("Session %s loaded", sessionID)
	return s
}

// BeginCheckout resumes an unfinished checkout or starts a new one. An empty
// cart is refused and drops any idle checkout.
func (u *SessionUseCase) BeginCheckout(s *Session) (*CheckoutUseCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout != nil && s.checkout.Processing() {
		return s.checkout, nil
	}

	if s.Cart.IsEmpty() {
		if s.checkout != nil && !s.checkout.Completed() {
			s.checkout = nil
		}
		return nil, errors.CartEmpty()
	}

	if s.checkout != nil && !s.checkout.Completed() {
		return s.checkout, nil
	}

	checkout, err := BeginCheckout(s.ID, s.Cart, s.Orders, u.checkout)
	if err != nil {
		return nil, err
	}
	s.checkout = checkout
	return checkout, nil
}

// Checkout returns the session's current checkout, including a completed one.
func (u *SessionUseCase) Checkout(s *Session) (*CheckoutUseCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return nil, errors.InvalidStep("Checkout has not been started")
	}
	return s.checkout, nil
}

// Cleanup evicts sessions idle longer than the TTL. Sessions with a payment
// in flight are kept.
func (u *SessionUseCase) Cleanup() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	evicted := 0
	for id, s := range u.sessions {
		if !s.idleSince(now, u.idleTTL) || s.paymentInFlight() {
			continue
		}
		delete(u.sessions, id)
		evicted++
	}
	if evicted > 0 {
		logger.Info("Evicted %d idle sessions", evicted)
	}
	return evicted
}

func (u *SessionUseCase) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.sessions)
}

// StartCleanupRoutine runs Cleanup periodically until ctx is done.
func (u *SessionUseCase) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				u.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

func (s *Session) paymentInFlight() bool {
	s.mu.Lock()
	checkout := s.checkout
	s.mu.Unlock()
	return checkout != nil && checkout.Processing()
}
