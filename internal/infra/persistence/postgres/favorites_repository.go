package postgres

import (
	"context"

	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// favoritesRepository implements the repository.FavoritesRepository interface.
type favoritesRepository struct {
	db *gorm.DB
}

// NewFavoritesRepository is the constructor for favoritesRepository.
func NewFavoritesRepository(db *gorm.DB) repository.FavoritesRepository {
	return &favoritesRepository{
		db: db,
	}
}

// FindOrCreate returns the favorites document for the user, creating an
// empty one when none exists yet.
func (repo *favoritesRepository) FindOrCreate(ctx context.Context, userID uuid.UUID, userType entity.UserType) (*entity.Favorites, error) {
	var favoritesM model.FavoritesModel

	err := repo.db.WithContext(ctx).
		Preload("Products").
		Where("user_id = ? AND user_type = ?", userID, string(userType)).
		First(&favoritesM).Error
	if err == nil {
		return toFavoritesDomain(&favoritesM), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to find favorites")
	}

	favoritesM = model.FavoritesModel{
		UserID:   userID,
		UserType: string(userType),
	}
	if err := repo.db.WithContext(ctx).Create(&favoritesM).Error; err != nil {
		// A concurrent first access may have created the row already.
		if isUniqueConstraintViolation(err) {
			return repo.FindOrCreate(ctx, userID, userType)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create favorites")
	}

	return toFavoritesDomain(&favoritesM), nil
}

// Update persists the product ID set of an existing document.
func (repo *favoritesRepository) Update(ctx context.Context, favorites *entity.Favorites) error {
	if err := repo.db.WithContext(ctx).
		Where("favorites_id = ?", favorites.ID).
		Delete(&model.FavoriteProductModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear favorite products")
	}

	if len(favorites.ProductIDs) > 0 {
		products := make([]model.FavoriteProductModel, 0, len(favorites.ProductIDs))
		for _, productID := range favorites.ProductIDs {
			products = append(products, model.FavoriteProductModel{
				FavoritesID: favorites.ID,
				ProductID:   productID,
			})
		}
		if err := repo.db.WithContext(ctx).Create(&products).Error; err != nil {
			return errors.Wrap(err, "failed to insert favorite products")
		}
	}

	// Touch the parent row so UpdatedAt reflects the change.
	if err := repo.db.WithContext(ctx).
		Model(&model.FavoritesModel{}).
		Where("id = ?", favorites.ID).
		Update("updated_at", gorm.Expr("NOW()")).Error; err != nil {
		return errors.Wrap(err, "failed to touch favorites")
	}

	return nil
}

// --- Mapper Functions ---

// toFavoritesDomain converts a GORM FavoritesModel to a domain Favorites entity.
func toFavoritesDomain(data *model.FavoritesModel) *entity.Favorites {
	if data == nil {
		return nil
	}

	productIDs := make([]uuid.UUID, 0, len(data.Products))
	for _, product := range data.Products {
		productIDs = append(productIDs, product.ProductID)
	}

	return &entity.Favorites{
		ID:         data.ID,
		UserID:     data.UserID,
		UserType:   entity.UserType(data.UserType),
		ProductIDs: productIDs,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
