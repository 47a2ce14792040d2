package impl

import (
	"context"
	"net/http"
	"testing"

	"workbuddy/config"
	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authServiceFixture struct {
	service     usecase.AuthUsecase
	accountRepo *fakeAccountRepo
	hasher      *fakePasswordHasher
	tokens      *fakeTokenService
	mailer      *fakeMailer
}

func createTestAuthService(t *testing.T) *authServiceFixture {
	t.Helper()

	accountRepo := newFakeAccountRepo()
	hasher := &fakePasswordHasher{}
	tokens := &fakeTokenService{}
	mailer := &fakeMailer{}

	cfg := &config.Config{
		Admin: &config.AdminConfig{
			Email:    "admin@workbuddy.test",
			Password: "admin-secret",
		},
	}

	service := NewAuthService(AuthServiceParams{
		AccountRepo:  accountRepo,
		Hasher:       hasher,
		TokenService: tokens,
		Mailer:       mailer,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})

	return &authServiceFixture{
		service:     service,
		accountRepo: accountRepo,
		hasher:      hasher,
		tokens:      tokens,
		mailer:      mailer,
	}
}

func seedClient(t *testing.T, repo *fakeAccountRepo, email, password string) *entity.Account {
	t.Helper()

	account := &entity.Account{
		Name:         "Test Client",
		Email:        email,
		PasswordHash: "$2fake$" + password,
		Client:       &entity.ClientProfile{},
	}
	require.NoError(t, repo.Create(context.Background(), account))

	return account
}

func seedEmployee(t *testing.T, repo *fakeAccountRepo, email, password string) *entity.Account {
	t.Helper()

	account := &entity.Account{
		Name:         "Test Employee",
		Email:        email,
		PasswordHash: "$2fake$" + password,
		Employee:     &entity.EmployeeProfile{},
	}
	require.NoError(t, repo.Create(context.Background(), account))

	return account
}

func TestAuthService_Login_AdminSuccess(t *testing.T) {
	fixture := createTestAuthService(t)

	output, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "admin@workbuddy.test",
		Password: "admin-secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "admin", output.UserID)
	assert.Equal(t, entity.UserTypeAdmin, output.UserType)
	assert.NotEmpty(t, output.Token)
}

func TestAuthService_Login_AdminWrongPassword(t *testing.T) {
	fixture := createTestAuthService(t)

	_, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "admin@workbuddy.test",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_EmployeeBeforeClient(t *testing.T) {
	fixture := createTestAuthService(t)

	seedClient(t, fixture.accountRepo, "shared@workbuddy.test", "client-pass")
	employee := seedEmployee(t, fixture.accountRepo, "shared@workbuddy.test", "employee-pass")

	output, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "shared@workbuddy.test",
		Password: "employee-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, employee.ID.String(), output.UserID)
	assert.Equal(t, entity.UserTypeEmployee, output.UserType)
}

func TestAuthService_Login_NoFallthroughOnWrongPassword(t *testing.T) {
	fixture := createTestAuthService(t)

	seedClient(t, fixture.accountRepo, "shared@workbuddy.test", "client-pass")
	seedEmployee(t, fixture.accountRepo, "shared@workbuddy.test", "employee-pass")

	// The client password must not unlock the employee match.
	_, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "shared@workbuddy.test",
		Password: "client-pass",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fixture := createTestAuthService(t)

	_, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@workbuddy.test",
		Password: "whatever",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	// An unmatched email reports 404, never the 401 reserved for a
	// wrong password on a matched account.
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
}

func TestAuthService_Login_UpgradesPlaintextPassword(t *testing.T) {
	fixture := createTestAuthService(t)

	account := &entity.Account{
		Name:         "Legacy Client",
		Email:        "legacy@workbuddy.test",
		PasswordHash: "plain-password",
		Client:       &entity.ClientProfile{},
	}
	require.NoError(t, fixture.accountRepo.Create(context.Background(), account))

	output, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "legacy@workbuddy.test",
		Password: "plain-password",
	})

	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), output.UserID)

	stored := fixture.accountRepo.accounts[account.ID]
	assert.True(t, fixture.hasher.IsHash(stored.PasswordHash))
	assert.True(t, fixture.hasher.Check("plain-password", stored.PasswordHash))
}

func TestAuthService_Login_PlaintextMismatch(t *testing.T) {
	fixture := createTestAuthService(t)

	account := &entity.Account{
		Email:        "legacy@workbuddy.test",
		PasswordHash: "plain-password",
		Client:       &entity.ClientProfile{},
	}
	require.NoError(t, fixture.accountRepo.Create(context.Background(), account))

	_, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "legacy@workbuddy.test",
		Password: "other",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	stored := fixture.accountRepo.accounts[account.ID]
	assert.Equal(t, "plain-password", stored.PasswordHash)
}

func TestAuthService_RegisterClient_Success(t *testing.T) {
	fixture := createTestAuthService(t)

	output, err := fixture.service.RegisterClient(context.Background(), &usecase.RegisterClientInput{
		Name:     "New Client",
		Email:    "new@workbuddy.test",
		Password: "secret",
		Address:  "1 Main St",
	})

	require.NoError(t, err)
	require.NotNil(t, output.Account)
	assert.NotEqual(t, uuid.Nil, output.Account.ID)
	assert.NotEmpty(t, output.CodeToken)

	require.NotNil(t, output.Account.Client)
	assert.False(t, output.Account.Client.Verified)
	assert.True(t, fixture.hasher.IsHash(output.Account.PasswordHash))

	require.Len(t, fixture.mailer.sent, 1)
	assert.Equal(t, "verification", fixture.mailer.sent[0].kind)
	assert.Equal(t, "new@workbuddy.test", fixture.mailer.sent[0].to)
}

func TestAuthService_RegisterClient_DuplicateEmail(t *testing.T) {
	fixture := createTestAuthService(t)

	seedClient(t, fixture.accountRepo, "taken@workbuddy.test", "pass")

	_, err := fixture.service.RegisterClient(context.Background(), &usecase.RegisterClientInput{
		Name:     "Second",
		Email:    "taken@workbuddy.test",
		Password: "secret",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
}

func TestAuthService_RegisterClient_MailFailureIsNotFatal(t *testing.T) {
	fixture := createTestAuthService(t)
	fixture.mailer.sendErr = errors.New("smtp down")

	output, err := fixture.service.RegisterClient(context.Background(), &usecase.RegisterClientInput{
		Name:     "New Client",
		Email:    "new@workbuddy.test",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.CodeToken)
}

func TestAuthService_VerifyClient_Success(t *testing.T) {
	fixture := createTestAuthService(t)

	account := seedClient(t, fixture.accountRepo, "client@workbuddy.test", "pass")

	codeToken, err := fixture.tokens.GenerateCodeToken("client@workbuddy.test", "123456", 0)
	require.NoError(t, err)

	err = fixture.service.VerifyClient(context.Background(), &usecase.VerifyCodeInput{
		Code:      "123456",
		CodeToken: codeToken,
	})

	require.NoError(t, err)
	assert.True(t, fixture.accountRepo.accounts[account.ID].Client.Verified)
}

func TestAuthService_VerifyClient_CodeMismatch(t *testing.T) {
	fixture := createTestAuthService(t)

	seedClient(t, fixture.accountRepo, "client@workbuddy.test", "pass")

	codeToken, err := fixture.tokens.GenerateCodeToken("client@workbuddy.test", "123456", 0)
	require.NoError(t, err)

	err = fixture.service.VerifyClient(context.Background(), &usecase.VerifyCodeInput{
		Code:      "654321",
		CodeToken: codeToken,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationCodeInvalid))
}

func TestAuthService_VerifyClient_BadToken(t *testing.T) {
	fixture := createTestAuthService(t)

	err := fixture.service.VerifyClient(context.Background(), &usecase.VerifyCodeInput{
		Code:      "123456",
		CodeToken: "garbage",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationCodeInvalid))
}

func TestAuthService_RequestPasswordRecovery_Success(t *testing.T) {
	fixture := createTestAuthService(t)

	seedClient(t, fixture.accountRepo, "client@workbuddy.test", "pass")

	output, err := fixture.service.RequestPasswordRecovery(context.Background(), "client@workbuddy.test")

	require.NoError(t, err)
	assert.NotEmpty(t, output.CodeToken)

	require.Len(t, fixture.mailer.sent, 1)
	assert.Equal(t, "recovery", fixture.mailer.sent[0].kind)
}

func TestAuthService_RequestPasswordRecovery_UnknownEmail(t *testing.T) {
	fixture := createTestAuthService(t)

	_, err := fixture.service.RequestPasswordRecovery(context.Background(), "nobody@workbuddy.test")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
	assert.Empty(t, fixture.mailer.sent)
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	fixture := createTestAuthService(t)

	account := seedClient(t, fixture.accountRepo, "client@workbuddy.test", "old-pass")

	codeToken, err := fixture.tokens.GenerateCodeToken("client@workbuddy.test", "123456", 0)
	require.NoError(t, err)

	err = fixture.service.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
		Code:        "123456",
		CodeToken:   codeToken,
		NewPassword: "new-pass",
	})

	require.NoError(t, err)

	stored := fixture.accountRepo.accounts[account.ID]
	assert.True(t, fixture.hasher.Check("new-pass", stored.PasswordHash))
	assert.False(t, fixture.hasher.Check("old-pass", stored.PasswordHash))
}

func TestAuthService_ResetPassword_CodeMismatch(t *testing.T) {
	fixture := createTestAuthService(t)

	account := seedClient(t, fixture.accountRepo, "client@workbuddy.test", "old-pass")

	codeToken, err := fixture.tokens.GenerateCodeToken("client@workbuddy.test", "123456", 0)
	require.NoError(t, err)

	err = fixture.service.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
		Code:        "000000",
		CodeToken:   codeToken,
		NewPassword: "new-pass",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationCodeInvalid))
	assert.True(t, fixture.hasher.Check("old-pass", fixture.accountRepo.accounts[account.ID].PasswordHash))
}

func TestAuthService_VerifyRecoveryCode(t *testing.T) {
	fixture := createTestAuthService(t)

	codeToken, err := fixture.tokens.GenerateCodeToken("client@workbuddy.test", "123456", 0)
	require.NoError(t, err)

	require.NoError(t, fixture.service.VerifyRecoveryCode(context.Background(), &usecase.VerifyCodeInput{
		Code:      "123456",
		CodeToken: codeToken,
	}))

	err = fixture.service.VerifyRecoveryCode(context.Background(), &usecase.VerifyCodeInput{
		Code:      "999999",
		CodeToken: codeToken,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationCodeInvalid))
}
