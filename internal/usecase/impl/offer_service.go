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
	"go.uber.org/fx"
)

// offerService implements the OfferUsecase interface.
type offerService struct {
	offerRepo   repository.OfferRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// OfferServiceParams holds dependencies for offerService, injected by Fx.
type OfferServiceParams struct {
	fx.In

	OfferRepo   repository.OfferRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewOfferService is the constructor for offerService.
func NewOfferService(params OfferServiceParams) usecase.OfferUsecase {
	return &offerService{
		offerRepo:   params.OfferRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *offerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListOffers returns all offers, optionally restricted to one product.
func (srv *offerService) ListOffers(ctx context.Context, productID *uuid.UUID) ([]*entity.Offer, error) {
	offers, err := srv.offerRepo.List(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	return offers, nil
}

// GetOffer retrieves one offer.
func (srv *offerService) GetOffer(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	offer, err := srv.offerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOfferNotFound, "offer lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find offer")
	}

	return offer, nil
}

// CreateOffer validates and stores a new product offer.
func (srv *offerService) CreateOffer(ctx context.Context, input *usecase.OfferInput) (*entity.Offer, error) {
	offer := offerFromInput(input)

	if err := offer.Validate(); err != nil {
		return nil, errors.Wrap(domainerrors.ErrOfferInvalid.WithDetails(err.Error()), "offer rejected")
	}

	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "offer references unknown product")
		}

		return nil, errors.Wrap(err, "failed to check offer product")
	}

	if err := srv.offerRepo.Create(ctx, offer); err != nil {
		return nil, errors.Wrap(err, "failed to create offer")
	}

	srv.log(ctx).Info("Offer created", slog.Any("offerID", offer.ID), slog.Any("productID", offer.ProductID))

	return offer, nil
}

// UpdateOffer validates and replaces the fields of an existing offer.
func (srv *offerService) UpdateOffer(ctx context.Context, id uuid.UUID, input *usecase.OfferInput) (*entity.Offer, error) {
	offer, err := srv.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}

	replacement := offerFromInput(input)
	if err := replacement.Validate(); err != nil {
		return nil, errors.Wrap(domainerrors.ErrOfferInvalid.WithDetails(err.Error()), "offer rejected")
	}

	offer.ProductID = replacement.ProductID
	offer.DiscountType = replacement.DiscountType
	offer.Percentage = replacement.Percentage
	offer.Value = replacement.Value
	offer.From = replacement.From
	offer.To = replacement.To
	offer.State = replacement.State

	if err := srv.offerRepo.Update(ctx, offer); err != nil {
		return nil, errors.Wrap(err, "failed to update offer")
	}

	return offer, nil
}

// DeleteOffer removes the offer.
func (srv *offerService) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	if err := srv.offerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return errors.Wrap(domainerrors.ErrOfferNotFound, "offer delete failed")
		}

		return errors.Wrap(err, "failed to delete offer")
	}

	srv.log(ctx).Info("Offer deleted", slog.Any("offerID", id))

	return nil
}

func offerFromInput(input *usecase.OfferInput) *entity.Offer {
	return &entity.Offer{
		ProductID:    input.ProductID,
		DiscountType: input.DiscountType,
		Percentage:   input.Percentage,
		Value:        input.Value,
		From:         input.From,
		To:           input.To,
		State:        input.State,
	}
}
