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

// discountCodeRepository implements the repository.DiscountCodeRepository interface.
type discountCodeRepository struct {
	db *gorm.DB
}

// NewDiscountCodeRepository is the constructor for discountCodeRepository.
func NewDiscountCodeRepository(db *gorm.DB) repository.DiscountCodeRepository {
	return &discountCodeRepository{
		db: db,
	}
}

// FindByID retrieves a discount code by its unique ID.
func (repo *discountCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DiscountCode, error) {
	var codeM model.DiscountCodeModel

	if err := repo.db.WithContext(ctx).
		Preload("Clients").
		Where("id = ?", id).
		First(&codeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDiscountCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find discount code by ID")
	}

	return toDiscountCodeDomain(&codeM), nil
}

// FindByCode retrieves a discount code by its code string.
func (repo *discountCodeRepository) FindByCode(ctx context.Context, code string) (*entity.DiscountCode, error) {
	var codeM model.DiscountCodeModel

	if err := repo.db.WithContext(ctx).
		Preload("Clients").
		Where("code = ?", code).
		First(&codeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDiscountCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find discount code")
	}

	return toDiscountCodeDomain(&codeM), nil
}

// List returns all discount codes.
func (repo *discountCodeRepository) List(ctx context.Context) ([]*entity.DiscountCode, error) {
	var codeModels []*model.DiscountCodeModel

	if err := repo.db.WithContext(ctx).
		Preload("Clients").
		Order("created_at DESC").
		Find(&codeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list discount codes")
	}

	codes := make([]*entity.DiscountCode, 0, len(codeModels))
	for _, codeM := range codeModels {
		codes = append(codes, toDiscountCodeDomain(codeM))
	}

	return codes, nil
}

// Create persists a new discount code.
func (repo *discountCodeRepository) Create(ctx context.Context, dc *entity.DiscountCode) error {
	codeM := fromDiscountCodeDomain(dc)

	if err := repo.db.WithContext(ctx).Create(codeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCode
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create discount code")
	}

	// Update the entity with generated values
	dc.ID = codeM.ID
	dc.CreatedAt = codeM.CreatedAt
	dc.UpdatedAt = codeM.UpdatedAt

	return nil
}

// Update modifies an existing discount code, replacing its client set.
func (repo *discountCodeRepository) Update(ctx context.Context, dc *entity.DiscountCode) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DiscountCodeModel{}).
		Where("id = ?", dc.ID).
		Updates(map[string]any{
			"code":       dc.Code,
			"percentage": dc.Percentage,
			"is_active":  dc.IsActive,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateCode
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update discount code")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDiscountCodeNotFound
	}

	if err := repo.db.WithContext(ctx).
		Where("discount_code_id = ?", dc.ID).
		Delete(&model.DiscountCodeClientModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear discount code clients")
	}

	if len(dc.ClientIDs) > 0 {
		clients := make([]model.DiscountCodeClientModel, 0, len(dc.ClientIDs))
		for _, clientID := range dc.ClientIDs {
			clients = append(clients, model.DiscountCodeClientModel{
				DiscountCodeID: dc.ID,
				ClientID:       clientID,
			})
		}
		if err := repo.db.WithContext(ctx).Create(&clients).Error; err != nil {
			return errors.Wrap(err, "failed to insert discount code clients")
		}
	}

	return nil
}

// Delete removes the discount code and its eligibility rows.
func (repo *discountCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("discount_code_id = ?", id).
		Delete(&model.DiscountCodeClientModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete discount code clients")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.DiscountCodeModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete discount code")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDiscountCodeNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toDiscountCodeDomain converts a GORM DiscountCodeModel to a domain DiscountCode entity.
func toDiscountCodeDomain(data *model.DiscountCodeModel) *entity.DiscountCode {
	if data == nil {
		return nil
	}

	clientIDs := make([]uuid.UUID, 0, len(data.Clients))
	for _, client := range data.Clients {
		clientIDs = append(clientIDs, client.ClientID)
	}

	return &entity.DiscountCode{
		ID:         data.ID,
		Code:       data.Code,
		Percentage: data.Percentage,
		IsActive:   data.IsActive,
		ClientIDs:  clientIDs,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromDiscountCodeDomain converts a domain DiscountCode entity to a GORM DiscountCodeModel.
func fromDiscountCodeDomain(data *entity.DiscountCode) *model.DiscountCodeModel {
	if data == nil {
		return nil
	}

	clients := make([]model.DiscountCodeClientModel, 0, len(data.ClientIDs))
	for _, clientID := range data.ClientIDs {
		clients = append(clients, model.DiscountCodeClientModel{
			DiscountCodeID: data.ID,
			ClientID:       clientID,
		})
	}

	return &model.DiscountCodeModel{
		ID:         data.ID,
		Code:       data.Code,
		Percentage: data.Percentage,
		IsActive:   data.IsActive,
		Clients:    clients,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
