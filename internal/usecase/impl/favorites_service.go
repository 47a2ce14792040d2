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

// favoritesService implements the FavoritesUsecase interface.
type favoritesService struct {
	favoritesRepo repository.FavoritesRepository
	productRepo   repository.ProductRepository
	logger        *slog.Logger
}

// FavoritesServiceParams holds dependencies for favoritesService, injected by Fx.
type FavoritesServiceParams struct {
	fx.In

	FavoritesRepo repository.FavoritesRepository
	ProductRepo   repository.ProductRepository
	Logger        *slog.Logger
}

// NewFavoritesService is the constructor for favoritesService.
func NewFavoritesService(params FavoritesServiceParams) usecase.FavoritesUsecase {
	return &favoritesService{
		favoritesRepo: params.FavoritesRepo,
		productRepo:   params.ProductRepo,
		logger:        params.Logger,
	}
}

func (srv *favoritesService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetFavorites returns the user's saved set with its products resolved,
// creating an empty document on first access.
func (srv *favoritesService) GetFavorites(ctx context.Context, userID uuid.UUID, userType entity.UserType) (*usecase.FavoritesOutput, error) {
	favorites, err := srv.favoritesRepo.FindOrCreate(ctx, userID, userType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load favorites")
	}

	return srv.resolve(ctx, favorites)
}

// AddFavorite saves a product into the user's set. Saving an already
// saved product is a no-op.
func (srv *favoritesService) AddFavorite(ctx context.Context, userID uuid.UUID, userType entity.UserType, productID uuid.UUID) (*usecase.FavoritesOutput, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "cannot save unknown product")
		}

		return nil, errors.Wrap(err, "failed to check product")
	}

	favorites, err := srv.favoritesRepo.FindOrCreate(ctx, userID, userType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load favorites")
	}

	if favorites.Add(productID) {
		if err := srv.favoritesRepo.Update(ctx, favorites); err != nil {
			return nil, errors.Wrap(err, "failed to save favorite")
		}
		srv.log(ctx).Debug("Favorite added", slog.Any("userID", userID), slog.Any("productID", productID))
	}

	return srv.resolve(ctx, favorites)
}

// RemoveFavorite drops a product from the user's set. Removing an
// absent product is a no-op.
func (srv *favoritesService) RemoveFavorite(ctx context.Context, userID uuid.UUID, userType entity.UserType, productID uuid.UUID) (*usecase.FavoritesOutput, error) {
	favorites, err := srv.favoritesRepo.FindOrCreate(ctx, userID, userType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load favorites")
	}

	if favorites.Remove(productID) {
		if err := srv.favoritesRepo.Update(ctx, favorites); err != nil {
			return nil, errors.Wrap(err, "failed to remove favorite")
		}
	}

	return srv.resolve(ctx, favorites)
}

// resolve attaches the still-existing products behind the saved IDs.
// Vanished products stay in the stored set but are absent from the
// resolved list.
func (srv *favoritesService) resolve(ctx context.Context, favorites *entity.Favorites) (*usecase.FavoritesOutput, error) {
	products := []*entity.Product{}
	if len(favorites.ProductIDs) > 0 {
		var err error
		products, err = srv.productRepo.FindByIDs(ctx, favorites.ProductIDs)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve favorite products")
		}
	}

	return &usecase.FavoritesOutput{
		Favorites: favorites,
		Products:  products,
	}, nil
}
