package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"luxuryline/internal/domain/entity"
	"luxuryline/internal/domain/service"
	"luxuryline/pkg/errors"
	"luxuryline/pkg/logger"
	"luxuryline/pkg/utils"
)

const mailTimeout = 10 * time.Second

// CheckoutDeps are shared by every checkout the process starts.
type CheckoutDeps struct {
	Payments  service.PaymentProcessor
	Validator *validator.Validate
	Notifier  Notifier
	Mailer    ConfirmationMailer
	Now       func() time.Time
}

// CheckoutUseCase walks one order through Shipping -> Payment -> Confirmation.
// Payment runs in the background and can be cancelled; Confirmation is final.
type CheckoutUseCase struct {
	mu        sync.Mutex
	sessionID string
	cart      *CartUseCase
	orders    OrderRecorder
	deps      CheckoutDeps

	step         entity.CheckoutStep
	shipping     entity.ShippingInfo
	processing   bool
	cancel       context.CancelFunc
	done         chan struct{}
	confirmation *entity.OrderConfirmation
}

type CheckoutState struct {
	Step         entity.CheckoutStep       `json:"step"`
	StepName     string                    `json:"stepName"`
	Processing   bool                      `json:"processing"`
	Shipping     entity.ShippingInfo       `json:"shipping"`
	Pricing      entity.PriceSummary       `json:"pricing"`
	ItemCount    int                       `json:"itemCount"`
	Confirmation *entity.OrderConfirmation `json:"confirmation,omitempty"`
}

// BeginCheckout refuses an empty cart; the caller should send the shopper
// back to the cart view. Placed orders go to orders, which may be nil.
func BeginCheckout(sessionID string, cart *CartUseCase, orders OrderRecorder, deps CheckoutDeps) (*CheckoutUseCase, error) {
	if cart.IsEmpty() {
		return nil, errors.CartEmpty()
	}
	if deps.Notifier == nil {
		deps.Notifier = noopNotifier{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Validator == nil {
		deps.Validator = utils.NewValidator()
	}

	done := make(chan struct{})
	close(done)

	return &CheckoutUseCase{
		sessionID: sessionID,
		cart:      cart,
		orders:    orders,
		deps:      deps,
		step:      entity.StepShipping,
		shipping:  entity.DefaultShippingInfo(),
		done:      done,
	}, nil
}

func (u *CheckoutUseCase) SubmitShipping(info entity.ShippingInfo) (CheckoutState, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.step != entity.StepShipping {
		return u.stateLocked(), errors.InvalidStep("Shipping details can only be submitted on the shipping step")
	}
	if err := u.deps.Validator.Struct(info); err != nil {
		return u.stateLocked(), err
	}

	u.shipping = info
	u.step = entity.StepPayment
	return u.stateLocked(), nil
}

// SubmitPayment starts the simulated payment and returns immediately with
// Processing set. The order is the cart as it stands now; completion takes
// those lines out of the cart and moves to Confirmation.
func (u *CheckoutUseCase) SubmitPayment(info entity.PaymentInfo) (CheckoutState, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.step != entity.StepPayment {
		return u.stateLocked(), errors.InvalidStep("Payment can only be submitted on the payment step")
	}
	if u.processing {
		return u.stateLocked(), errors.Conflict("Payment is already being processed")
	}
	if err := u.deps.Validator.Struct(info); err != nil {
		return u.stateLocked(), err
	}
	ordered := u.cart.Items()
	if len(ordered) == 0 {
		return u.stateLocked(), errors.CartEmpty()
	}

	pricing := service.CalculatePricing(linesTotal(ordered))
	req := service.PaymentRequest{
		SessionID:      u.sessionID,
		Amount:         pricing.Total,
		CardholderName: info.CardholderName,
		CardLast4:      service.Last4(info.CardNumber),
	}

	ctx, cancel := context.WithCancel(context.Background())
	u.processing = true
	u.cancel = cancel
	u.done = make(chan struct{})

	go u.process(ctx, req, ordered, pricing, u.done)

	return u.stateLocked(), nil
}

func (u *CheckoutUseCase) process(ctx context.Context, req service.PaymentRequest, ordered []entity.LineItem, pricing entity.PriceSummary, done chan struct{}) {
	defer close(done)

	_, err := u.deps.Payments.Process(ctx, req)

	u.mu.Lock()
	u.processing = false
	if err != nil || ctx.Err() != nil {
		u.mu.Unlock()
		logger.Info("Checkout payment for session %s did not complete", u.sessionID)
		return
	}

	placedAt := u.deps.Now()
	order := entity.OrderConfirmation{
		OrderNumber: OrderNumber(placedAt),
		ItemCount:   linesCount(ordered),
		Total:       pricing.Total,
		Email:       u.shipping.Email,
		PlacedAt:    placedAt,
		Items:       ordered,
		Pricing:     pricing,
	}
	u.confirmation = &order
	u.step = entity.StepConfirmation
	shipping := u.shipping
	u.cart.RemoveOrdered(context.Background(), ordered)
	u.mu.Unlock()

	if u.orders != nil {
		u.orders.Record(context.Background(), order)
	}

	logger.WithFields(logger.Fields{
		"session":    u.sessionID,
		"order":      order.OrderNumber,
		"item_count": order.ItemCount,
		"total":      order.Total.StringFixed(2),
	}).Info("Order placed")

	u.deps.Notifier.Notify(u.sessionID, entity.Notification{
		Title:       "Order Placed Successfully!",
		Description: "You will receive a confirmation email shortly.",
	})

	if u.deps.Mailer != nil {
		mailCtx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := u.deps.Mailer.SendOrderConfirmation(mailCtx, shipping, order); err != nil {
			logger.Error("Failed to send confirmation for order %s: %v", order.OrderNumber, err)
		}
	}
}

// Back returns from Payment to Shipping. Not allowed while processing.
func (u *CheckoutUseCase) Back() (CheckoutState, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.step != entity.StepPayment {
		return u.stateLocked(), errors.InvalidStep("Can only go back from the payment step")
	}
	if u.processing {
		return u.stateLocked(), errors.Conflict("Payment is being processed")
	}

	u.step = entity.StepShipping
	return u.stateLocked(), nil
}

// Cancel stops a pending payment and waits for the worker to exit. It
// reports whether a payment was actually cancelled; false means nothing was
// pending or the payment had already settled.
func (u *CheckoutUseCase) Cancel() bool {
	u.mu.Lock()
	if !u.processing {
		u.mu.Unlock()
		return false
	}
	cancel, done := u.cancel, u.done
	u.mu.Unlock()

	cancel()
	<-done

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.step != entity.StepConfirmation
}

// Done is closed once no payment is in flight.
func (u *CheckoutUseCase) Done() <-chan struct{} {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.done
}

func (u *CheckoutUseCase) State() CheckoutState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.stateLocked()
}

func (u *CheckoutUseCase) Completed() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.step == entity.StepConfirmation
}

func (u *CheckoutUseCase) Processing() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.processing
}

func (u *CheckoutUseCase) stateLocked() CheckoutState {
	state := CheckoutState{
		Step:       u.step,
		StepName:   u.step.String(),
		Processing: u.processing,
		Shipping:   u.shipping,
	}

	if u.confirmation != nil {
		c := *u.confirmation
		state.Confirmation = &c
		state.Pricing = c.Pricing
		state.ItemCount = c.ItemCount
		return state
	}

	state.Pricing = service.CalculatePricing(u.cart.GetCartTotal())
	state.ItemCount = u.cart.GetCartItemsCount()
	return state
}

func linesTotal(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func linesCount(items []entity.LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// OrderNumber is "LL" followed by the last six digits of the unix-millisecond timestamp.
func OrderNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "LL" + ms
}
