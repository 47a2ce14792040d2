package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "workbuddy/internal/delivery/context"
	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	txManager   repository.TransactionManager
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for reviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	ReviewRepo  repository.ReviewRepository
	ProductRepo repository.ProductRepository
	TxManager   repository.TransactionManager
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		reviewRepo:  params.ReviewRepo,
		productRepo: params.ProductRepo,
		txManager:   params.TxManager,
		logger:      params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProductReviews returns every review of a product.
func (srv *reviewService) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product reviews")
	}

	return reviews, nil
}

// ListClientReviews returns every review written by a client.
func (srv *reviewService) ListClientReviews(ctx context.Context, clientID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list client reviews")
	}

	return reviews, nil
}

// CreateReview stores a review and recomputes the product's rating
// aggregate in the same transaction.
func (srv *reviewService) CreateReview(ctx context.Context, input *usecase.CreateReviewInput) (*entity.Review, error) {
	if !entity.ValidScore(input.Score) {
		return nil, errors.Wrap(domainerrors.ErrReviewScoreInvalid, "review rejected")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("comment must not be empty"), "review rejected")
	}

	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "review references unknown product")
		}

		return nil, errors.Wrap(err, "failed to check review product")
	}

	review := &entity.Review{
		ClientID:  input.ClientID,
		ProductID: input.ProductID,
		Score:     input.Score,
		Comment:   input.Comment,
	}

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		reviewRepo := factory.NewReviewRepository()

		if err := reviewRepo.Create(ctx, review); err != nil {
			if errors.Is(err, repository.ErrDuplicateReview) {
				return errors.Wrap(domainerrors.ErrReviewAlreadyExists, "review creation failed")
			}

			return errors.Wrap(err, "failed to create review")
		}

		return srv.recomputeRating(ctx, factory, review.ProductID)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Review created", slog.Any("reviewID", review.ID), slog.Any("productID", review.ProductID))

	return review, nil
}

// UpdateReview applies the non-nil input fields and recomputes the
// product's rating aggregate. A client caller may only touch their own
// review; callerID uuid.Nil marks a staff caller.
func (srv *reviewService) UpdateReview(ctx context.Context, id, callerID uuid.UUID, input *usecase.UpdateReviewInput) (*entity.Review, error) {
	if input.Score != nil && !entity.ValidScore(*input.Score) {
		return nil, errors.Wrap(domainerrors.ErrReviewScoreInvalid, "review rejected")
	}

	review, err := srv.loadReview(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerID != uuid.Nil && review.ClientID != callerID {
		return nil, errors.Wrap(domainerrors.ErrReviewNotOwned, "review update rejected")
	}

	if input.Score != nil {
		review.Score = *input.Score
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewReviewRepository().Update(ctx, review); err != nil {
			return errors.Wrap(err, "failed to update review")
		}

		return srv.recomputeRating(ctx, factory, review.ProductID)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// DeleteReview removes the review and recomputes the product's rating
// aggregate. Ownership is checked the same way as for updates.
func (srv *reviewService) DeleteReview(ctx context.Context, id, callerID uuid.UUID) error {
	review, err := srv.loadReview(ctx, id)
	if err != nil {
		return err
	}

	if callerID != uuid.Nil && review.ClientID != callerID {
		return errors.Wrap(domainerrors.ErrReviewNotOwned, "review delete rejected")
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewReviewRepository().Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete review")
		}

		return srv.recomputeRating(ctx, factory, review.ProductID)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Review deleted", slog.Any("reviewID", id))

	return nil
}

func (srv *reviewService) loadReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := srv.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, errors.Wrap(domainerrors.ErrReviewNotFound, "review lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return review, nil
}

// recomputeRating overwrites the product's rating aggregate with the
// mean over its remaining reviews, or zero when none are left.
func (srv *reviewService) recomputeRating(ctx context.Context, factory repository.RepositoryFactory, productID uuid.UUID) error {
	reviews, err := factory.NewReviewRepository().ListByProduct(ctx, productID)
	if err != nil {
		return errors.Wrap(err, "failed to load reviews for rating")
	}

	average := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Score
		}
		average = float64(sum) / float64(len(reviews))
	}

	if err := factory.NewProductRepository().UpdateRating(ctx, productID, average, len(reviews)); err != nil {
		return errors.Wrap(err, "failed to update product rating")
	}

	return nil
}
