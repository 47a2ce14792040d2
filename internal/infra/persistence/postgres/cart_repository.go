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

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// FindByID retrieves a cart with its lines and resolved products.
func (repo *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Where("id = ?", id).
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by ID")
	}

	return toCartDomain(&cartM), nil
}

// FindByClientID retrieves the active cart of a client.
func (repo *cartRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Where("client_id = ? AND state = ?", clientID, "active").
		Order("created_at DESC").
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by client")
	}

	return toCartDomain(&cartM), nil
}

// List returns all carts with their lines.
func (repo *cartRepository) List(ctx context.Context) ([]*entity.Cart, error) {
	var cartModels []*model.CartModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Order("created_at DESC").
		Find(&cartModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list carts")
	}

	carts := make([]*entity.Cart, 0, len(cartModels))
	for _, cartM := range cartModels {
		carts = append(carts, toCartDomain(cartM))
	}

	return carts, nil
}

// Create persists a new cart with its lines.
func (repo *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	cartM := fromCartDomain(cart)

	if err := repo.db.WithContext(ctx).Create(cartM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid client reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	// Update the entity with generated values
	cart.ID = cartM.ID
	cart.CreatedAt = cartM.CreatedAt
	cart.UpdatedAt = cartM.UpdatedAt
	for i := range cartM.Lines {
		if i < len(cart.Lines) {
			cart.Lines[i].ID = cartM.Lines[i].ID
			cart.Lines[i].CartID = cartM.ID
		}
	}

	return nil
}

// Update modifies an existing cart, replacing its lines.
func (repo *cartRepository) Update(ctx context.Context, cart *entity.Cart) error {
	cartM := fromCartDomain(cart)

	result := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("id = ?", cart.ID).
		Updates(map[string]any{
			"discount_code_id": cartM.DiscountCodeID,
			"total":            cartM.Total,
			"state":            cartM.State,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	// Replace the line set wholesale.
	if err := repo.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Delete(&model.CartLineModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear cart lines")
	}

	if len(cartM.Lines) > 0 {
		for i := range cartM.Lines {
			cartM.Lines[i].CartID = cart.ID
			cartM.Lines[i].Product = nil
		}
		if err := repo.db.WithContext(ctx).Create(&cartM.Lines).Error; err != nil {
			return errors.Wrap(err, "failed to insert cart lines")
		}
	}

	return nil
}

// Delete removes the cart and its lines.
func (repo *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("cart_id = ?", id).
		Delete(&model.CartLineModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete cart lines")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CartModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete cart")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCartDomain converts a GORM CartModel to a domain Cart entity.
func toCartDomain(data *model.CartModel) *entity.Cart {
	if data == nil {
		return nil
	}

	lines := make([]entity.CartLine, 0, len(data.Lines))
	for i := range data.Lines {
		lineM := &data.Lines[i]
		lines = append(lines, entity.CartLine{
			ID:        lineM.ID,
			CartID:    lineM.CartID,
			ProductID: lineM.ProductID,
			Quantity:  lineM.Quantity,
			Product:   toProductDomain(lineM.Product),
		})
	}

	return &entity.Cart{
		ID:             data.ID,
		ClientID:       data.ClientID,
		Lines:          lines,
		DiscountCodeID: data.DiscountCodeID,
		Total:          data.Total,
		State:          data.State,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromCartDomain converts a domain Cart entity to a GORM CartModel.
func fromCartDomain(data *entity.Cart) *model.CartModel {
	if data == nil {
		return nil
	}

	lines := make([]model.CartLineModel, 0, len(data.Lines))
	for i := range data.Lines {
		line := &data.Lines[i]
		lines = append(lines, model.CartLineModel{
			ID:        line.ID,
			CartID:    line.CartID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	return &model.CartModel{
		ID:             data.ID,
		ClientID:       data.ClientID,
		DiscountCodeID: data.DiscountCodeID,
		Total:          data.Total,
		State:          data.State,
		Lines:          lines,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
