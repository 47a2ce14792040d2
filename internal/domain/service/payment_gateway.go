package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// Charge is the provider-side record created for an order payment.
type Charge struct {
	ID         string
	ApproveURL string
}

// CaptureResult is the outcome of capturing a previously approved charge.
type CaptureResult struct {
	Status string
}

// Capture statuses reported by the provider.
const (
	CaptureStatusCompleted = "COMPLETED"
)

// PaymentGateway defines the interface to the external payment provider.
type PaymentGateway interface {
	// CreateCharge registers a charge for the given amount and returns
	// the provider charge plus the URL the payer must approve it at.
	CreateCharge(ctx context.Context, orderID string, amount decimal.Decimal, currency string) (*Charge, error)

	// CaptureCharge captures an approved charge.
	CaptureCharge(ctx context.Context, chargeID string) (*CaptureResult, error)

	// GetCharge fetches the provider-side status of a charge.
	GetCharge(ctx context.Context, chargeID string) (*CaptureResult, error)
}
