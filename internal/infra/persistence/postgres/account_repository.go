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

// accountRepository implements the repository.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// FindByID retrieves a single account with its profile by ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel

	if err := repo.db.WithContext(ctx).
		Preload("ClientProfile").
		Preload("EmployeeProfile").
		Where("id = ?", id).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by ID")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by email within a user type.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string, userType entity.UserType) (*entity.Account, error) {
	var accountM model.AccountModel

	if err := repo.db.WithContext(ctx).
		Preload("ClientProfile").
		Preload("EmployeeProfile").
		Where("email = ? AND user_type = ?", email, string(userType)).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// List returns every account of the given user type, newest first.
func (repo *accountRepository) List(ctx context.Context, userType entity.UserType) ([]*entity.Account, error) {
	var accountModels []*model.AccountModel

	if err := repo.db.WithContext(ctx).
		Preload("ClientProfile").
		Preload("EmployeeProfile").
		Where("user_type = ?", string(userType)).
		Order("created_at DESC").
		Find(&accountModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountModels))
	for _, accountM := range accountModels {
		accounts = append(accounts, toAccountDomain(accountM))
	}

	return accounts, nil
}

// Create persists a new account with its type-specific profile.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the entity with generated values
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update modifies an existing account and its profile.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"name":          accountM.Name,
			"email":         accountM.Email,
			"phone_number":  accountM.PhoneNumber,
			"password_hash": accountM.PasswordHash,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	if accountM.ClientProfile != nil {
		if err := repo.db.WithContext(ctx).
			Model(&model.ClientProfileModel{}).
			Where("account_id = ?", account.ID).
			Updates(map[string]any{
				"address":  accountM.ClientProfile.Address,
				"birthday": accountM.ClientProfile.Birthday,
				"verified": accountM.ClientProfile.Verified,
			}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update client profile")
		}
	}

	if accountM.EmployeeProfile != nil {
		if err := repo.db.WithContext(ctx).
			Model(&model.EmployeeProfileModel{}).
			Where("account_id = ?", account.ID).
			Updates(map[string]any{
				"hiring_date": accountM.EmployeeProfile.HiringDate,
				"dui":         accountM.EmployeeProfile.DUI,
				"isss":        accountM.EmployeeProfile.ISSS,
			}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update employee profile")
		}
	}

	return nil
}

// Delete removes the account and its profile rows.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", id).
		Delete(&model.ClientProfileModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete client profile")
	}
	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", id).
		Delete(&model.EmployeeProfileModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete employee profile")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AccountModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PhoneNumber:  data.PhoneNumber,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if data.ClientProfile != nil {
		account.Client = &entity.ClientProfile{
			AccountID: data.ClientProfile.AccountID,
			Address:   data.ClientProfile.Address,
			Birthday:  data.ClientProfile.Birthday,
			Verified:  data.ClientProfile.Verified,
			UpdatedAt: data.ClientProfile.UpdatedAt,
		}
	}

	if data.EmployeeProfile != nil {
		account.Employee = &entity.EmployeeProfile{
			AccountID:  data.EmployeeProfile.AccountID,
			HiringDate: data.EmployeeProfile.HiringDate,
			DUI:        data.EmployeeProfile.DUI,
			ISSS:       data.EmployeeProfile.ISSS,
			UpdatedAt:  data.EmployeeProfile.UpdatedAt,
		}
	}

	return account
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		ID:           data.ID,
		UserType:     string(data.UserType()),
		Name:         data.Name,
		Email:        data.Email,
		PhoneNumber:  data.PhoneNumber,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if data.Client != nil {
		accountM.ClientProfile = &model.ClientProfileModel{
			AccountID: data.ID,
			Address:   data.Client.Address,
			Birthday:  data.Client.Birthday,
			Verified:  data.Client.Verified,
		}
	}

	if data.Employee != nil {
		accountM.EmployeeProfile = &model.EmployeeProfileModel{
			AccountID:  data.ID,
			HiringDate: data.Employee.HiringDate,
			DUI:        data.Employee.DUI,
			ISSS:       data.Employee.ISSS,
		}
	}

	return accountM
}
