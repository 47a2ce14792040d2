package impl

import (
	"context"
	"log/slog"
	"time"

	"workbuddy/config"
	deliverycontext "workbuddy/internal/delivery/context"
	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/domain/service"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultCurrency = "USD"

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	accountRepo repository.AccountRepository
	codeRepo    repository.DiscountCodeRepository
	txManager   repository.TransactionManager
	gateway     service.PaymentGateway
	mailer      service.Mailer
	currency    string
	logger      *slog.Logger
}

// PaymentServiceParams holds dependencies for paymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	OrderRepo   repository.OrderRepository
	CartRepo    repository.CartRepository
	AccountRepo repository.AccountRepository
	CodeRepo    repository.DiscountCodeRepository
	TxManager   repository.TransactionManager
	Gateway     service.PaymentGateway
	Mailer      service.Mailer
	Config      *config.Config
	Logger      *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	currency := defaultCurrency
	if params.Config != nil && params.Config.PayPal != nil && params.Config.PayPal.Currency != "" {
		currency = params.Config.PayPal.Currency
	}

	return &paymentService{
		orderRepo:   params.OrderRepo,
		cartRepo:    params.CartRepo,
		accountRepo: params.AccountRepo,
		codeRepo:    params.CodeRepo,
		txManager:   params.TxManager,
		gateway:     params.Gateway,
		mailer:      params.Mailer,
		currency:    currency,
		logger:      params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePayment registers a provider charge for a pending order.
func (srv *paymentService) CreatePayment(ctx context.Context, orderID uuid.UUID) (*usecase.CreatePaymentOutput, error) {
	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentInfo.Status != entity.PaymentStatusPending {
		return nil, errors.Wrap(domainerrors.ErrPaymentNotPending, "charge creation rejected")
	}

	amount := order.TotalAmount
	if !amount.IsPositive() {
		// Orders migrated without a stored total fall back to the
		// cart's recomputed total.
		cart, err := srv.cartRepo.FindByID(ctx, order.CartID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load cart for charge amount")
		}

		amount = discountedCartTotal(ctx, cart, srv.codeRepo, srv.log(ctx))
		order.TotalAmount = amount
	}

	charge, err := srv.gateway.CreateCharge(ctx, order.ID.String(), amount, srv.currency)
	if err != nil {
		srv.log(ctx).Error("Provider charge creation failed", slog.Any("orderID", order.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPaymentGatewayFailed.WithDetails(err.Error()), "charge creation failed")
	}

	order.PaymentInfo.TransactionID = charge.ID
	if order.PaymentInfo.Method == "" {
		order.PaymentInfo.Method = "paypal"
	}

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to store charge reference")
	}

	srv.log(ctx).Info("Payment charge created", slog.Any("orderID", order.ID), slog.String("transactionID", charge.ID))

	return &usecase.CreatePaymentOutput{
		OrderID:       order.ID,
		TransactionID: charge.ID,
		ApproveURL:    charge.ApproveURL,
	}, nil
}

// CapturePayment captures the approved charge, marks the order paid and
// sends the confirmation email at most once per order.
func (srv *paymentService) CapturePayment(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentInfo.Status != entity.PaymentStatusPending {
		return nil, errors.Wrap(domainerrors.ErrPaymentNotPending, "capture rejected")
	}
	if order.PaymentInfo.TransactionID == "" {
		return nil, errors.Wrap(domainerrors.ErrPaymentNotPending, "order has no charge to capture")
	}

	result, err := srv.gateway.CaptureCharge(ctx, order.PaymentInfo.TransactionID)
	if err != nil {
		srv.log(ctx).Error("Provider capture failed", slog.Any("orderID", order.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPaymentGatewayFailed.WithDetails(err.Error()), "capture failed")
	}
	if result.Status != service.CaptureStatusCompleted {
		return nil, errors.Wrap(domainerrors.ErrPaymentGatewayFailed.WithDetails("provider status "+result.Status), "capture incomplete")
	}

	now := time.Now()
	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		orderRepo := factory.NewOrderRepository()

		current, err := orderRepo.FindByID(ctx, order.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload order for capture")
		}

		if !current.Status.CanTransitionTo(entity.OrderStatusPaid) {
			details := "cannot move order from " + string(current.Status) + " to paid"

			return errors.Wrap(domainerrors.ErrOrderTransition.WithDetails(details), "capture rejected")
		}

		current.Status = entity.OrderStatusPaid
		current.PaymentInfo.Status = entity.PaymentStatusCompleted
		current.PaymentInfo.PaymentDate = &now
		order = current

		return errors.Wrap(orderRepo.Update(ctx, current), "failed to mark order paid")
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Payment captured", slog.Any("orderID", order.ID))

	srv.sendPaymentConfirmation(ctx, order)

	return order, nil
}

// CancelPayment records an aborted checkout. It runs regardless of the
// current state so an abandoned provider redirect always lands the
// order in a terminal state.
func (srv *paymentService) CancelPayment(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.PaymentInfo.Status = entity.PaymentStatusFailed
	order.Status = entity.OrderStatusCancelled

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to record cancelled payment")
	}

	srv.log(ctx).Info("Payment cancelled", slog.Any("orderID", order.ID))

	return order, nil
}

// PaymentStatus reports both the stored and the provider-side status of
// the order's charge.
func (srv *paymentService) PaymentStatus(ctx context.Context, orderID uuid.UUID) (*usecase.PaymentStatusOutput, error) {
	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	output := &usecase.PaymentStatusOutput{
		OrderID:       order.ID,
		PaymentStatus: order.PaymentInfo.Status,
	}

	if order.PaymentInfo.TransactionID != "" {
		result, err := srv.gateway.GetCharge(ctx, order.PaymentInfo.TransactionID)
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrPaymentGatewayFailed.WithDetails(err.Error()), "provider status lookup failed")
		}
		output.ProviderStatus = result.Status
	}

	return output, nil
}

func (srv *paymentService) loadOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// sendPaymentConfirmation mails the buyer once. The NotificationSent
// flag is persisted after a successful send so a retried capture does
// not mail twice.
func (srv *paymentService) sendPaymentConfirmation(ctx context.Context, order *entity.Order) {
	if order.NotificationSent {
		return
	}

	account, err := srv.resolveBuyer(ctx, order)
	if err != nil {
		srv.log(ctx).Warn("Cannot resolve buyer for payment confirmation", slog.Any("orderID", order.ID), slog.Any("error", err))

		return
	}

	if err := srv.mailer.SendPaymentCompleted(ctx, account.Email, account.Name, order.ID.String(), order.TotalAmount); err != nil {
		srv.log(ctx).Warn("Failed to mail payment confirmation", slog.Any("orderID", order.ID), slog.Any("error", err))

		return
	}

	order.NotificationSent = true
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		srv.log(ctx).Warn("Failed to persist notification flag", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

// resolveBuyer finds the buyer's account, falling back through the cart
// for orders created before the user reference was recorded.
func (srv *paymentService) resolveBuyer(ctx context.Context, order *entity.Order) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, order.UserID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to look up buyer")
	}

	cart, err := srv.cartRepo.FindByID(ctx, order.CartID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up order cart")
	}

	account, err = srv.accountRepo.FindByID(ctx, cart.ClientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up cart owner")
	}

	return account, nil
}
