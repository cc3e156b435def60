package usecase

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"luxuryline/internal/domain/entity"
	"luxuryline/internal/domain/repository"
	"luxuryline/internal/domain/service"
)

type fakeSlots struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

func newFakeSlots() *fakeSlots {
	return &fakeSlots{data: make(map[string][]byte)}
}

func (f *fakeSlots) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	return v, nil
}

func (f *fakeSlots) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.writes++
	return nil
}

func (f *fakeSlots) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeSlots) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

func (f *fakeSlots) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entity.Notification
}

func (r *recordingNotifier) Notify(sessionID string, n entity.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	titles := make([]string, len(r.sent))
	for i, n := range r.sent {
		titles[i] = n.Title
	}
	return titles
}

// gatedPayments settles when release is closed, or fails when ctx is done.
type gatedPayments struct {
	release chan struct{}
}

func newGatedPayments() *gatedPayments {
	return &gatedPayments{release: make(chan struct{})}
}

func (g *gatedPayments) Process(ctx context.Context, req service.PaymentRequest) (*service.PaymentResult, error) {
	select {
	case <-g.release:
		return &service.PaymentResult{Status: "approved"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func product(id int, name string, price int64) entity.Product {
	return entity.Product{
		ID:       id,
		Name:     name,
		Category: entity.CategorySneakers,
		Price:    decimal.NewFromInt(price),
		Images:   []string{"https://example.com/" + name + ".jpg"},
		Sizes:    []string{"US 8", "US 9"},
		Colors:   []string{"Black", "White"},
	}
}
