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
	"go.uber.org/fx"
)

// accountService implements both AccountUsecase and ProfileUsecase. The
// profile operations are the account operations restricted to the
// caller's own record.
type accountService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		logger:      params.Logger,
	}
}

// NewProfileService exposes the same service as a ProfileUsecase.
func NewProfileService(params AccountServiceParams) usecase.ProfileUsecase {
	return &accountService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		logger:      params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAccounts returns every account of the given user type.
func (srv *accountService) ListAccounts(ctx context.Context, userType entity.UserType) ([]*entity.Account, error) {
	accounts, err := srv.accountRepo.List(ctx, userType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return accounts, nil
}

// GetAccount retrieves one account, checking it carries the expected type.
func (srv *accountService) GetAccount(ctx context.Context, userType entity.UserType, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.loadTyped(ctx, userType, id)
	if err != nil {
		return nil, err
	}

	return account, nil
}

// CreateAccount creates an account with the profile matching userType.
func (srv *accountService) CreateAccount(ctx context.Context, userType entity.UserType, input *usecase.CreateAccountInput) (*entity.Account, error) {
	srv.log(ctx).Info("Creating account", slog.String("userType", string(userType)), slog.String("email", input.Email))

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	account := &entity.Account{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: hashed,
	}

	switch userType {
	case entity.UserTypeClient:
		account.Client = &entity.ClientProfile{
			Address: input.Address,
		}
		if input.Birthday != nil {
			account.Client.Birthday = *input.Birthday
		}
	case entity.UserTypeEmployee:
		account.Employee = &entity.EmployeeProfile{
			DUI:  input.DUI,
			ISSS: input.ISSS,
		}
		if input.HiringDate != nil {
			account.Employee.HiringDate = *input.HiringDate
		}
	default:
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown account type")
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.Wrap(domainerrors.ErrAccountAlreadyExists, "account creation failed")
		}

		return nil, errors.Wrap(err, "failed to create account")
	}

	return account, nil
}

// UpdateAccount applies the non-nil input fields to an account.
func (srv *accountService) UpdateAccount(ctx context.Context, userType entity.UserType, id uuid.UUID, input *usecase.UpdateAccountInput) (*entity.Account, error) {
	account, err := srv.loadTyped(ctx, userType, id)
	if err != nil {
		return nil, err
	}

	if err := srv.applyUpdate(account, input); err != nil {
		return nil, err
	}

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.Wrap(domainerrors.ErrAccountAlreadyExists, "account update failed")
		}

		return nil, errors.Wrap(err, "failed to update account")
	}

	srv.log(ctx).Debug("Account updated", slog.Any("accountID", account.ID))

	return account, nil
}

// DeleteAccount removes an account after checking its type.
func (srv *accountService) DeleteAccount(ctx context.Context, userType entity.UserType, id uuid.UUID) error {
	if _, err := srv.loadTyped(ctx, userType, id); err != nil {
		return err
	}

	if err := srv.accountRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	srv.log(ctx).Info("Account deleted", slog.String("userType", string(userType)), slog.Any("accountID", id))

	return nil
}

// GetProfile returns the caller's own account record.
func (srv *accountService) GetProfile(ctx context.Context, userType entity.UserType, id uuid.UUID) (*entity.Account, error) {
	return srv.GetAccount(ctx, userType, id)
}

// UpdateProfile applies a partial update to the caller's own record.
func (srv *accountService) UpdateProfile(ctx context.Context, userType entity.UserType, id uuid.UUID, input *usecase.UpdateAccountInput) (*entity.Account, error) {
	return srv.UpdateAccount(ctx, userType, id, input)
}

func (srv *accountService) loadTyped(ctx context.Context, userType entity.UserType, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	if account.UserType() != userType {
		return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account type mismatch")
	}

	return account, nil
}

func (srv *accountService) applyUpdate(account *entity.Account, input *usecase.UpdateAccountInput) error {
	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Email != nil {
		account.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		account.PhoneNumber = *input.PhoneNumber
	}
	if input.Password != nil {
		hashed, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
		}
		account.PasswordHash = hashed
	}

	if account.Client != nil {
		if input.Address != nil {
			account.Client.Address = *input.Address
		}
		if input.Birthday != nil {
			account.Client.Birthday = *input.Birthday
		}
	}

	if account.Employee != nil {
		if input.HiringDate != nil {
			account.Employee.HiringDate = *input.HiringDate
		}
		if input.DUI != nil {
			account.Employee.DUI = *input.DUI
		}
		if input.ISSS != nil {
			account.Employee.ISSS = *input.ISSS
		}
	}

	return nil
}
