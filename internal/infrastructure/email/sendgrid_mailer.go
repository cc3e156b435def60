package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"luxuryline/internal/domain/entity"
	"luxuryline/pkg/logger"
)

// SendGridMailer sends order confirmations through SendGrid.
type SendGridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

func NewSendGridMailer(apiKey, fromAddr, fromName string) *SendGridMailer {
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (m *SendGridMailer) SendOrderConfirmation(ctx context.Context, shipping entity.ShippingInfo, order entity.OrderConfirmation) error {
	message := m.confirmationMessage(shipping, order)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send confirmation email, status code: %d", response.StatusCode)
	}

	logger.Info("Confirmation for order %s sent to %s", order.OrderNumber, shipping.Email)
	return nil
}

func (m *SendGridMailer) confirmationMessage(shipping entity.ShippingInfo, order entity.OrderConfirmation) *mail.SGMailV3 {
	from := mail.NewEmail(m.fromName, m.fromAddr)
	toName := strings.TrimSpace(shipping.FirstName + " " + shipping.LastName)
	to := mail.NewEmail(toName, shipping.Email)

	subject, text, htmlBody := ConfirmationContent(shipping, order)
	return mail.NewSingleEmail(from, subject, to, text, htmlBody)
}

// ConfirmationContent renders the subject, plain text and HTML bodies.
func ConfirmationContent(shipping entity.ShippingInfo, order entity.OrderConfirmation) (subject, text, htmlBody string) {
	subject = fmt.Sprintf("Your LuxuryLine order %s", order.OrderNumber)

	text = fmt.Sprintf(
		"Thank you for your order, %s.\n\nOrder number: %s\nItems: %d\nTotal: $%s\n\nShipping to:\n%s\n%s, %s %s\n%s\n",
		shipping.FirstName,
		order.OrderNumber,
		order.ItemCount,
		order.Total.StringFixed(2),
		shipping.Address,
		shipping.City, shipping.State, shipping.ZipCode,
		shipping.Country,
	)

	htmlBody = fmt.Sprintf(
		"<p>Thank you for your order, %s.</p><p>Order number: <strong>%s</strong><br>Items: %d<br>Total: $%s</p>",
		html.EscapeString(shipping.FirstName),
		html.EscapeString(order.OrderNumber),
		order.ItemCount,
		order.Total.StringFixed(2),
	)
	return subject, text, htmlBody
}
