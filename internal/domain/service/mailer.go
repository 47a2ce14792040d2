package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// Mailer defines the interface for outbound transactional email.
// Delivery failures are reported to the caller, which decides whether
// they are fatal for the surrounding operation.
type Mailer interface {
	// SendVerificationCode mails a registration verification code.
	SendVerificationCode(ctx context.Context, to, name, code string) error

	// SendRecoveryCode mails a password recovery code.
	SendRecoveryCode(ctx context.Context, to, code string) error

	// SendPaymentCompleted mails a payment confirmation for an order.
	SendPaymentCompleted(ctx context.Context, to, name, orderID string, amount decimal.Decimal) error

	// SendOrderStatusUpdate mails a fulfillment status change notice.
	SendOrderStatusUpdate(ctx context.Context, to, name, orderID, status string) error
}
