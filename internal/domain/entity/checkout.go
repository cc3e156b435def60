package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutStep int

const (
	StepShipping     CheckoutStep = 1
	StepPayment      CheckoutStep = 2
	StepConfirmation CheckoutStep = 3
)

func (s CheckoutStep) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// ShippingInfo is checked for presence only. Phone is optional.
type ShippingInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

// PaymentInfo is checked for presence only; nothing is charged. Billing
// fields are collected but not required.
type PaymentInfo struct {
	CardholderName string `json:"cardholderName" validate:"required"`
	CardNumber     string `json:"cardNumber" validate:"required"`
	ExpiryDate     string `json:"expiryDate" validate:"required"`
	CVV            string `json:"cvv" validate:"required"`
	BillingAddress string `json:"billingAddress"`
	BillingCity    string `json:"billingCity"`
	BillingState   string `json:"billingState"`
	BillingZip     string `json:"billingZip"`
	SameAsShipping bool   `json:"sameAsShipping"`
}

// DefaultShippingInfo carries the form's preset country.
func DefaultShippingInfo() ShippingInfo {
	return ShippingInfo{Country: "US"}
}

type PriceSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// OrderConfirmation is a placed order. Items and Pricing are the cart as it
// stood when payment was submitted.
type OrderConfirmation struct {
	OrderNumber string          `json:"orderNumber"`
	ItemCount   int             `json:"itemCount"`
	Total       decimal.Decimal `json:"total"`
	Email       string          `json:"email"`
	PlacedAt    time.Time       `json:"placedAt"`
	Items       []LineItem      `json:"items"`
	Pricing     PriceSummary    `json:"pricing"`
}
