// Package payment bridges orders to the PayPal REST API.
package payment

import (
	"context"
	"log/slog"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"

	"workbuddy/config"
	"workbuddy/internal/domain/service"
	"workbuddy/internal/errors"
)

const defaultCurrency = "USD"

type paypalGateway struct {
	client    *paypal.Client
	currency  string
	returnURL string
	cancelURL string
	logger    *slog.Logger
}

// NewPayPalGateway builds a PaymentGateway backed by the PayPal orders API.
func NewPayPalGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	if cfg.PayPal == nil || cfg.PayPal.ClientID == "" || cfg.PayPal.Secret == "" {
		return nil, errors.New("paypal credentials are required")
	}

	base := paypal.APIBaseSandBox
	if cfg.PayPal.Live {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.PayPal.ClientID, cfg.PayPal.Secret, base)
	if err != nil {
		return nil, errors.Wrap(err, "create paypal client")
	}

	currency := cfg.PayPal.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return &paypalGateway{
		client:    client,
		currency:  currency,
		returnURL: cfg.PayPal.ReturnURL,
		cancelURL: cfg.PayPal.CancelURL,
		logger:    logger,
	}, nil
}

// CreateCharge registers a PayPal order for the amount and returns its
// id together with the payer approval URL.
func (g *paypalGateway) CreateCharge(ctx context.Context, orderID string, amount decimal.Decimal, currency string) (*service.Charge, error) {
	if currency == "" {
		currency = g.currency
	}

	units := []paypal.PurchaseUnitRequest{{
		ReferenceID: orderID,
		Amount: &paypal.PurchaseUnitAmount{
			Currency: currency,
			Value:    amount.StringFixed(2),
		},
	}}

	appCtx := &paypal.ApplicationContext{
		ReturnURL: g.returnURL,
		CancelURL: g.cancelURL,
	}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		g.logger.ErrorContext(ctx, "paypal create order failed",
			slog.String("order_id", orderID),
			slog.Any("error", err))

		return nil, errors.Wrap(err, "paypal create order")
	}

	charge := &service.Charge{ID: order.ID}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			charge.ApproveURL = link.Href

			break
		}
	}

	return charge, nil
}

// CaptureCharge captures an approved PayPal order.
func (g *paypalGateway) CaptureCharge(ctx context.Context, chargeID string) (*service.CaptureResult, error) {
	resp, err := g.client.CaptureOrder(ctx, chargeID, paypal.CaptureOrderRequest{})
	if err != nil {
		g.logger.ErrorContext(ctx, "paypal capture failed",
			slog.String("charge_id", chargeID),
			slog.Any("error", err))

		return nil, errors.Wrap(err, "paypal capture order")
	}

	return &service.CaptureResult{Status: resp.Status}, nil
}

// GetCharge fetches the provider-side status of a PayPal order.
func (g *paypalGateway) GetCharge(ctx context.Context, chargeID string) (*service.CaptureResult, error) {
	order, err := g.client.GetOrder(ctx, chargeID)
	if err != nil {
		return nil, errors.Wrap(err, "paypal get order")
	}

	return &service.CaptureResult{Status: order.Status}, nil
}
