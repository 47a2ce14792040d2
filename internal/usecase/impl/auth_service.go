// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	"workbuddy/config"
	deliverycontext "workbuddy/internal/delivery/context"
	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/domain/service"
	"workbuddy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminUserID is the pseudo-identifier carried by admin session tokens.
// The admin account lives in configuration, not in the database.
const adminUserID = "admin"

// authService implements the AuthUsecase interface.
type authService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	adminEmail   string
	adminPass    string
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	adminEmail, adminPass := "", ""
	if params.Config != nil && params.Config.Admin != nil {
		adminEmail = params.Config.Admin.Email
		adminPass = params.Config.Admin.Password
	}

	return &authService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailer:       params.Mailer,
		adminEmail:   adminEmail,
		adminPass:    adminPass,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login resolves credentials in fixed precedence: the configured admin
// account, then employees, then clients. The first email match decides
// the identity; password failure on that match rejects the login rather
// than falling through to the next collection.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	if srv.adminEmail != "" && input.Email == srv.adminEmail {
		if input.Password != srv.adminPass {
			srv.log(ctx).Warn("Admin login failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		token, err := srv.tokenService.GenerateSessionToken(adminUserID, string(entity.UserTypeAdmin))
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate admin session token")
		}

		return &usecase.LoginOutput{
			Token:    token,
			UserID:   adminUserID,
			UserType: entity.UserTypeAdmin,
			Name:     "Administrator",
		}, nil
	}

	for _, userType := range []entity.UserType{entity.UserTypeEmployee, entity.UserTypeClient} {
		account, err := srv.accountRepo.FindByEmail(ctx, input.Email, userType)
		if errors.Is(err, repository.ErrAccountNotFound) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to look up account for login")
		}

		return srv.finishLogin(ctx, account, userType, input.Password)
	}

	srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", input.Email))

	return nil, errors.Wrap(domainerrors.ErrUserNotFound, "no account matches this email")
}

// finishLogin checks the password against the stored credential,
// transparently rehashing rows migrated with plaintext passwords.
func (srv *authService) finishLogin(ctx context.Context, account *entity.Account, userType entity.UserType, password string) (*usecase.LoginOutput, error) {
	if srv.hasher.IsHash(account.PasswordHash) {
		if !srv.hasher.Check(password, account.PasswordHash) {
			srv.log(ctx).Warn("Login failed", slog.String("email", account.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}
	} else {
		// Legacy row still holding a plaintext password. Compare
		// directly, then upgrade the stored value on success.
		if account.PasswordHash != password {
			srv.log(ctx).Warn("Login failed", slog.String("email", account.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		hashed, err := srv.hasher.Hash(password)
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to rehash legacy password")
		}
		account.PasswordHash = hashed
		if err := srv.accountRepo.Update(ctx, account); err != nil {
			// The login itself succeeded; keep going and retry the
			// upgrade on the next login.
			srv.log(ctx).Warn("Failed to persist rehashed password", slog.Any("accountID", account.ID), slog.Any("error", err))
		} else {
			srv.log(ctx).Info("Upgraded legacy plaintext password", slog.Any("accountID", account.ID))
		}
	}

	token, err := srv.tokenService.GenerateSessionToken(account.ID.String(), string(userType))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID), slog.String("userType", string(userType)))

	return &usecase.LoginOutput{
		Token:    token,
		UserID:   account.ID.String(),
		UserType: userType,
		Name:     account.Name,
	}, nil
}

// RegisterClient creates an unverified client account and issues a
// verification code, mailed to the client and bound into a short-lived
// token returned to the caller.
func (srv *authService) RegisterClient(ctx context.Context, input *usecase.RegisterClientInput) (*usecase.RegisterClientOutput, error) {
	srv.log(ctx).Info("Registering client", slog.String("email", input.Email))

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	account := &entity.Account{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: hashed,
		Client: &entity.ClientProfile{
			Address: input.Address,
		},
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.Wrap(domainerrors.ErrAccountAlreadyExists, "client registration failed")
		}

		return nil, errors.Wrap(err, "failed to create client account")
	}

	code, err := generateCode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification code")
	}

	codeToken, err := srv.tokenService.GenerateCodeToken(account.Email, code, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification code token")
	}

	if err := srv.mailer.SendVerificationCode(ctx, account.Email, account.Name, code); err != nil {
		// Registration already succeeded; the client can request a new
		// code through the recovery endpoint.
		srv.log(ctx).Warn("Failed to mail verification code", slog.String("email", account.Email), slog.Any("error", err))
	}

	return &usecase.RegisterClientOutput{
		Account:   account,
		CodeToken: codeToken,
	}, nil
}

// VerifyClient checks the mailed code against its binding token and
// marks the client account as verified.
func (srv *authService) VerifyClient(ctx context.Context, input *usecase.VerifyCodeInput) error {
	claims, err := srv.tokenService.ValidateCodeToken(input.CodeToken)
	if err != nil {
		return errors.Wrap(domainerrors.ErrVerificationCodeInvalid, "verification token invalid or expired")
	}
	if claims.Code != input.Code {
		return errors.Wrap(domainerrors.ErrVerificationCodeInvalid, "verification code mismatch")
	}

	account, err := srv.accountRepo.FindByEmail(ctx, claims.Email, entity.UserTypeClient)
	if err != nil {
		return errors.Wrap(err, "failed to load client for verification")
	}
	if account.Client == nil {
		return errors.Wrap(domainerrors.ErrAccountNotFound, "account has no client profile")
	}

	account.Client.Verified = true
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return errors.Wrap(err, "failed to mark client verified")
	}

	srv.log(ctx).Info("Client verified", slog.Any("accountID", account.ID))

	return nil
}

// RequestPasswordRecovery mails a recovery code to the account. Clients
// are tried first, then employees; the admin has no recovery flow.
func (srv *authService) RequestPasswordRecovery(ctx context.Context, email string) (*usecase.RecoveryOutput, error) {
	srv.log(ctx).Info("Password recovery requested", slog.String("email", email))

	account, err := srv.findByEmailAnyType(ctx, email)
	if err != nil {
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate recovery code")
	}

	codeToken, err := srv.tokenService.GenerateCodeToken(account.Email, code, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate recovery code token")
	}

	if err := srv.mailer.SendRecoveryCode(ctx, account.Email, code); err != nil {
		return nil, errors.Wrap(err, "failed to mail recovery code")
	}

	return &usecase.RecoveryOutput{CodeToken: codeToken}, nil
}

// VerifyRecoveryCode checks a recovery code without consuming it, so
// the client UI can gate the password form.
func (srv *authService) VerifyRecoveryCode(_ context.Context, input *usecase.VerifyCodeInput) error {
	claims, err := srv.tokenService.ValidateCodeToken(input.CodeToken)
	if err != nil {
		return errors.Wrap(domainerrors.ErrVerificationCodeInvalid, "recovery token invalid or expired")
	}
	if claims.Code != input.Code {
		return errors.Wrap(domainerrors.ErrVerificationCodeInvalid, "recovery code mismatch")
	}

	return nil
}

// ResetPassword verifies the recovery code and replaces the password of
// the account the token was issued for.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	claims, err := srv.tokenService.ValidateCodeToken(input.CodeToken)
	if err != nil {
		return errors.Wrap(domainerrors.ErrVerificationCodeInvalid, "recovery token invalid or expired")
	}
	if claims.Code != input.Code {
		return errors.Wrap(domainerrors.ErrVerificationCodeInvalid, "recovery code mismatch")
	}

	account, err := srv.findByEmailAnyType(ctx, claims.Email)
	if err != nil {
		return err
	}

	hashed, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	account.PasswordHash = hashed
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return errors.Wrap(err, "failed to store new password")
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("accountID", account.ID))

	return nil
}

func (srv *authService) findByEmailAnyType(ctx context.Context, email string) (*entity.Account, error) {
	for _, userType := range []entity.UserType{entity.UserTypeClient, entity.UserTypeEmployee} {
		account, err := srv.accountRepo.FindByEmail(ctx, email, userType)
		if errors.Is(err, repository.ErrAccountNotFound) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to look up account by email")
		}

		return account, nil
	}

	return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "no account registered under this email")
}

// generateCode produces a 6-digit numeric one-time code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", errors.Wrap(err, "failed to read random source")
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
