package impl

import (
	"context"
	"log/slog"

	deliverycontext "workbuddy/internal/delivery/context"
	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	codeRepo    repository.DiscountCodeRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	CodeRepo    repository.DiscountCodeRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		codeRepo:    params.CodeRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCarts returns all carts.
func (srv *cartService) ListCarts(ctx context.Context) ([]*entity.Cart, error) {
	carts, err := srv.cartRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list carts")
	}

	return carts, nil
}

// GetCart retrieves one cart with its total freshly recomputed.
func (srv *cartService) GetCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.loadCart(ctx, id)
	if err != nil {
		return nil, err
	}

	cart.Total = srv.computeTotal(ctx, cart)

	return cart, nil
}

// GetClientCart retrieves the client's active cart.
func (srv *cartService) GetClientCart(ctx context.Context, clientID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartNotFound, "client has no active cart")
		}

		return nil, errors.Wrap(err, "failed to find client cart")
	}

	cart.Total = srv.computeTotal(ctx, cart)

	return cart, nil
}

// CreateCart opens a cart with an optional initial line set.
func (srv *cartService) CreateCart(ctx context.Context, input *usecase.CreateCartInput) (*entity.Cart, error) {
	srv.log(ctx).Info("Creating cart", slog.Any("clientID", input.ClientID))

	cart := &entity.Cart{
		ClientID: input.ClientID,
		State:    "active",
	}

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, errors.Wrap(domainerrors.ErrInvalidQuantity, "cart line rejected")
		}
		cart.AddLine(item.ProductID, item.Quantity)
	}

	if err := srv.cartRepo.Create(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to create cart")
	}

	return srv.refresh(ctx, cart.ID)
}

// AddItem merges a quantity into the cart and persists the new total.
func (srv *cartService) AddItem(ctx context.Context, cartID uuid.UUID, input *usecase.CartItemInput) (*entity.Cart, error) {
	if input.Quantity <= 0 {
		return nil, errors.Wrap(domainerrors.ErrInvalidQuantity, "cart line rejected")
	}

	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "cannot add unknown product")
		}

		return nil, errors.Wrap(err, "failed to check product")
	}

	cart, err := srv.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.AddLine(input.ProductID, input.Quantity)

	return srv.persistWithTotal(ctx, cart)
}

// UpdateItem replaces the quantity of an existing line.
func (srv *cartService) UpdateItem(ctx context.Context, cartID uuid.UUID, input *usecase.CartItemInput) (*entity.Cart, error) {
	if input.Quantity <= 0 {
		return nil, errors.Wrap(domainerrors.ErrInvalidQuantity, "cart line rejected")
	}

	cart, err := srv.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	idx := cart.Line(input.ProductID)
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrCartLineNotFound, "cannot update missing line")
	}
	cart.Lines[idx].Quantity = input.Quantity

	return srv.persistWithTotal(ctx, cart)
}

// RemoveItem drops a line from the cart.
func (srv *cartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if !cart.RemoveLine(productID) {
		return nil, errors.Wrap(domainerrors.ErrCartLineNotFound, "cannot remove missing line")
	}

	return srv.persistWithTotal(ctx, cart)
}

// ApplyDiscountCode attaches an active, eligible discount code to the
// cart and recomputes the total.
func (srv *cartService) ApplyDiscountCode(ctx context.Context, cartID uuid.UUID, code string) (*entity.Cart, error) {
	cart, err := srv.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	dc, err := srv.codeRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrDiscountCodeNotFound) {
			return nil, errors.Wrap(domainerrors.ErrDiscountCodeNotFound, "cannot apply unknown code")
		}

		return nil, errors.Wrap(err, "failed to find discount code")
	}

	if !dc.IsActive {
		return nil, errors.Wrap(domainerrors.ErrDiscountCodeInactive, "cannot apply inactive code")
	}
	if !dc.EligibleFor(cart.ClientID) {
		return nil, errors.Wrap(domainerrors.ErrDiscountCodeNotEligible, "client not eligible for code")
	}

	cart.DiscountCodeID = &dc.ID

	return srv.persistWithTotal(ctx, cart)
}

// DeleteCart removes the cart.
func (srv *cartService) DeleteCart(ctx context.Context, id uuid.UUID) error {
	if err := srv.cartRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return errors.Wrap(domainerrors.ErrCartNotFound, "cart delete failed")
		}

		return errors.Wrap(err, "failed to delete cart")
	}

	return nil
}

func (srv *cartService) loadCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartNotFound, "cart lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return cart, nil
}

func (srv *cartService) refresh(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.loadCart(ctx, id)
	if err != nil {
		return nil, err
	}

	return srv.persistWithTotal(ctx, cart)
}

func (srv *cartService) persistWithTotal(ctx context.Context, cart *entity.Cart) (*entity.Cart, error) {
	cart.Total = srv.computeTotal(ctx, cart)

	if err := srv.cartRepo.Update(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to persist cart")
	}

	return cart, nil
}

func (srv *cartService) computeTotal(ctx context.Context, cart *entity.Cart) decimal.Decimal {
	return discountedCartTotal(ctx, cart, srv.codeRepo, srv.log(ctx))
}

// discountedCartTotal sums the resolvable lines and applies the
// attached discount code when it is still active and the client still
// eligible. Lines whose product vanished are skipped, never fatal. The
// percentage is applied in decimal arithmetic and rounded to cents.
func discountedCartTotal(ctx context.Context, cart *entity.Cart, codeRepo repository.DiscountCodeRepository, logger *slog.Logger) decimal.Decimal {
	total := cart.Subtotal()

	if cart.DiscountCodeID != nil {
		dc, err := codeRepo.FindByID(ctx, *cart.DiscountCodeID)
		if err != nil {
			logger.Warn("Cart references unresolvable discount code", slog.Any("cartID", cart.ID), slog.Any("error", err))
		} else if dc.IsActive && dc.EligibleFor(cart.ClientID) {
			percentage := decimal.NewFromFloat(dc.Percentage).Div(decimal.NewFromInt(100))
			factor := decimal.NewFromInt(1).Sub(percentage)
			total = total.Mul(factor)
		}
	}

	return total.Round(2)
}
