package usecase

import (
	"context"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// PaymentUsecase bridges orders to the external payment provider.
type PaymentUsecase interface {
	// CreatePayment registers a provider charge for a pending order and
	// returns the approval URL the payer must visit.
	CreatePayment(ctx context.Context, orderID uuid.UUID) (*CreatePaymentOutput, error)

	// CapturePayment captures the approved charge, marks the order paid
	// and sends the confirmation email once.
	CapturePayment(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// CancelPayment marks the order's payment failed and the order
	// cancelled, regardless of its current state.
	CancelPayment(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// PaymentStatus reports the provider-side status of the order's charge.
	PaymentStatus(ctx context.Context, orderID uuid.UUID) (*PaymentStatusOutput, error)
}

// --- Output DTOs ---

// CreatePaymentOutput carries the provider charge reference.
type CreatePaymentOutput struct {
	OrderID       uuid.UUID `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	ApproveURL    string    `json:"approve_url"`
}

// PaymentStatusOutput reports both the stored and provider-side status.
type PaymentStatusOutput struct {
	OrderID        uuid.UUID            `json:"order_id"`
	PaymentStatus  entity.PaymentStatus `json:"payment_status"`
	ProviderStatus string               `json:"provider_status"`
}
