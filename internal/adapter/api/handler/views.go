package handler

import (
	"time"

	"luxuryline/internal/domain/entity"
	"luxuryline/internal/usecase"
)

// PricingView is the price summary rounded for display.
type PricingView struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func newPricingView(p entity.PriceSummary) PricingView {
	return PricingView{
		Subtotal: p.Subtotal.StringFixed(2),
		Shipping: p.Shipping.StringFixed(2),
		Tax:      p.Tax.StringFixed(2),
		Total:    p.Total.StringFixed(2),
	}
}

type OrderView struct {
	OrderNumber string            `json:"orderNumber"`
	ItemCount   int               `json:"itemCount"`
	Total       string            `json:"total"`
	Email       string            `json:"email"`
	PlacedAt    string            `json:"placedAt"`
	Items       []entity.LineItem `json:"items"`
	Pricing     PricingView       `json:"pricing"`
}

func newOrderView(o entity.OrderConfirmation) OrderView {
	items := o.Items
	if items == nil {
		items = []entity.LineItem{}
	}
	return OrderView{
		OrderNumber: o.OrderNumber,
		ItemCount:   o.ItemCount,
		Total:       o.Total.StringFixed(2),
		Email:       o.Email,
		PlacedAt:    o.PlacedAt.UTC().Format(time.RFC3339),
		Items:       items,
		Pricing:     newPricingView(o.Pricing),
	}
}

type CheckoutView struct {
	Step         entity.CheckoutStep `json:"step"`
	StepName     string              `json:"stepName"`
	Processing   bool                `json:"processing"`
	Shipping     entity.ShippingInfo `json:"shipping"`
	Pricing      PricingView         `json:"pricing"`
	ItemCount    int                 `json:"itemCount"`
	Confirmation *OrderView          `json:"confirmation,omitempty"`
}

func newCheckoutView(state usecase.CheckoutState) CheckoutView {
	view := CheckoutView{
		Step:       state.Step,
		StepName:   state.StepName,
		Processing: state.Processing,
		Shipping:   state.Shipping,
		Pricing:    newPricingView(state.Pricing),
		ItemCount:  state.ItemCount,
	}
	if c := state.Confirmation; c != nil {
		order := newOrderView(*c)
		view.Confirmation = &order
	}
	return view
}
