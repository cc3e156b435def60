package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"luxuryline/pkg/logger"
)

// PaymentRequest describes the charge the checkout would make.
type PaymentRequest struct {
	SessionID      string
	Amount         decimal.Decimal
	CardholderName string
	CardLast4      string
}

type PaymentResult struct {
	Status      string
	ProcessedAt time.Time
}

// PaymentProcessor settles a checkout payment. Process blocks until the
// payment settles or ctx is done.
type PaymentProcessor interface {
	Process(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
}

// SimulatedPaymentService waits a fixed delay and always approves. There is
// no decline path.
type SimulatedPaymentService struct {
	delay time.Duration
	now   func() time.Time
}

func NewSimulatedPaymentService(delay time.Duration) *SimulatedPaymentService {
	return &SimulatedPaymentService{
		delay: delay,
		now:   time.Now,
	}
}

func (s *SimulatedPaymentService) Process(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	logger.Info("Processing simulated payment for session %s, amount: %s", req.SessionID, req.Amount.StringFixed(2))

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		logger.Warn("Simulated payment for session %s cancelled: %v", req.SessionID, ctx.Err())
		return nil, fmt.Errorf("payment cancelled: %w", ctx.Err())
	}

	return &PaymentResult{
		Status:      "approved",
		ProcessedAt: s.now(),
	}, nil
}

// Last4 masks a card number down to its last four characters.
func Last4(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
