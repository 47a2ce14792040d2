package impl

import (
	"context"
	"log/slog"

	deliverycontext "workbuddy/internal/delivery/context"
	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/domain/service"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const defaultOrderLimit = 20

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	accountRepo repository.AccountRepository
	codeRepo    repository.DiscountCodeRepository
	txManager   repository.TransactionManager
	mailer      service.Mailer
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo   repository.OrderRepository
	CartRepo    repository.CartRepository
	AccountRepo repository.AccountRepository
	CodeRepo    repository.DiscountCodeRepository
	TxManager   repository.TransactionManager
	Mailer      service.Mailer
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo:   params.OrderRepo,
		cartRepo:    params.CartRepo,
		accountRepo: params.AccountRepo,
		codeRepo:    params.CodeRepo,
		txManager:   params.TxManager,
		mailer:      params.Mailer,
		logger:      params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListOrders returns all orders.
func (srv *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder retrieves one order.
func (srv *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// CreateOrder places a pending order from an existing cart. The total
// is recomputed from the cart's lines and discount code at creation;
// the stored cart snapshot and the request carry no authority over it.
func (srv *orderService) CreateOrder(ctx context.Context, input *usecase.CreateOrderInput) (*entity.Order, error) {
	srv.log(ctx).Info("Creating order", slog.Any("cartID", input.CartID), slog.Any("userID", input.UserID))

	address := shippingFromInput(input.ShippingAddress)
	if !address.Complete() {
		return nil, errors.Wrap(domainerrors.ErrShippingAddressIncomplete, "order rejected")
	}

	cart, err := srv.cartRepo.FindByID(ctx, input.CartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartNotFound, "order references unknown cart")
		}

		return nil, errors.Wrap(err, "failed to find cart for order")
	}

	total := discountedCartTotal(ctx, cart, srv.codeRepo, srv.log(ctx))

	order := &entity.Order{
		CartID:          cart.ID,
		UserID:          input.UserID,
		UserType:        input.UserType,
		ShippingAddress: address,
		Status:          entity.OrderStatusPending,
		TotalAmount:     total,
		PaymentInfo: entity.PaymentInfo{
			Method: input.PaymentMethod,
			Status: entity.PaymentStatusPending,
		},
	}

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	return order, nil
}

// CreateOrderForClient opens a fresh cart and the order referencing it
// in one transaction, so a failed order never strands a cart.
func (srv *orderService) CreateOrderForClient(ctx context.Context, input *usecase.AdminCreateOrderInput) (*entity.Order, error) {
	srv.log(ctx).Info("Creating back-office order", slog.Any("clientID", input.ClientID))

	address := shippingFromInput(input.ShippingAddress)
	if !address.Complete() {
		return nil, errors.Wrap(domainerrors.ErrShippingAddressIncomplete, "order rejected")
	}

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		cartRepo := factory.NewCartRepository()
		productRepo := factory.NewProductRepository()
		orderRepo := factory.NewOrderRepository()

		cart := &entity.Cart{
			ClientID: input.ClientID,
			State:    "active",
		}
		total := decimal.Zero
		for _, item := range input.Items {
			if item.Quantity <= 0 {
				return errors.Wrap(domainerrors.ErrInvalidQuantity, "order line rejected")
			}

			product, err := productRepo.FindByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return errors.Wrap(domainerrors.ErrProductNotFound, "order references unknown product")
				}

				return errors.Wrap(err, "failed to resolve order product")
			}

			cart.AddLine(item.ProductID, item.Quantity)
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		cart.Total = total.Round(2)
		if err := cartRepo.Create(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to create order cart")
		}

		order = &entity.Order{
			CartID:          cart.ID,
			UserID:          input.ClientID,
			UserType:        entity.UserTypeClient,
			ShippingAddress: address,
			Status:          entity.OrderStatusPending,
			TotalAmount:     cart.Total,
			PaymentInfo: entity.PaymentInfo{
				Method: input.PaymentMethod,
				Status: entity.PaymentStatusPending,
			},
		}

		return errors.Wrap(orderRepo.Create(ctx, order), "failed to create order")
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateStatus moves the order through the fulfillment state machine and
// notifies the buyer by mail on success.
func (srv *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, errors.Wrap(domainerrors.ErrOrderTransition.WithDetails("unknown order status"), "status rejected")
	}

	order, err := srv.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		details := "cannot move order from " + string(order.Status) + " to " + string(status)

		return nil, errors.Wrap(domainerrors.ErrOrderTransition.WithDetails(details), "status rejected")
	}

	order.Status = status
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated", slog.Any("orderID", order.ID), slog.String("status", string(status)))

	srv.notifyStatusChange(ctx, order)

	return order, nil
}

// DeleteOrder removes an order that has not yet entered fulfillment.
func (srv *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := srv.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	if !order.Deletable() {
		return errors.Wrap(domainerrors.ErrOrderNotDeletable, "order already past pending")
	}

	if err := srv.orderRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted", slog.Any("orderID", id))

	return nil
}

// ListUserOrders returns a filtered page of the user's own orders.
func (srv *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID, filter repository.OrderFilter) (*usecase.UserOrdersOutput, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultOrderLimit
	}

	orders, total, err := srv.orderRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &usecase.UserOrdersOutput{
		Orders:     orders,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages,
	}, nil
}

// notifyStatusChange mails the buyer about the new fulfillment state
// when their account and notification preference allow it. Failures are
// logged, never fatal.
func (srv *orderService) notifyStatusChange(ctx context.Context, order *entity.Order) {
	account, err := srv.accountRepo.FindByID(ctx, order.UserID)
	if err != nil {
		srv.log(ctx).Warn("Cannot resolve order owner for notification", slog.Any("orderID", order.ID), slog.Any("error", err))

		return
	}

	if err := srv.mailer.SendOrderStatusUpdate(ctx, account.Email, account.Name, order.ID.String(), string(order.Status)); err != nil {
		srv.log(ctx).Warn("Failed to mail order status update", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

func shippingFromInput(input usecase.ShippingAddressInput) entity.ShippingAddress {
	return entity.ShippingAddress{
		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
	}
}
