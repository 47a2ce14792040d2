package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is the coarser, parallel state of the payment itself.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// orderTransitions is the legal fulfillment state machine. cancelled and
// delivered are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded},
}

// Valid reports whether the status is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}

	return false
}

// CanTransitionTo reports whether next is a legal move from s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// CanTransitionTo reports whether next is a legal move from s.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// ShippingAddress is the immutable address snapshot embedded in an
// order. All four fields are required at order creation.
type ShippingAddress struct {
	Street     string
	City       string
	State      string
	PostalCode string
}

// Complete reports whether every field of the snapshot is present.
func (a ShippingAddress) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.PostalCode != ""
}

// PaymentInfo tracks the external charge tied to an order.
type PaymentInfo struct {
	Method        string
	Status        PaymentStatus
	TransactionID string
	PaymentDate   *time.Time
}

// Order references a cart snapshot and tracks fulfillment and payment
// state. NotificationSent guards against duplicate payment-confirmation
// emails.
type Order struct {
	ID               uuid.UUID
	CartID           uuid.UUID
	UserID           uuid.UUID
	UserType         UserType
	ShippingAddress  ShippingAddress
	PaymentInfo      PaymentInfo
	Status           OrderStatus
	TotalAmount      decimal.Decimal
	NotificationSent bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Deletable reports whether the order may still be deleted. Only pending
// orders can be removed.
func (o *Order) Deletable() bool {
	return o.Status == OrderStatusPending
}
