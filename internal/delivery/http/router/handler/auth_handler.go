package handler

import (
	"log/slog"
	"net/http"
	"time"

	"workbuddy/internal/delivery/http/middleware"
	"workbuddy/internal/delivery/http/response"
	"workbuddy/internal/domain/service"
	"workbuddy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc       usecase.AuthUsecase
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, tokenSvc service.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// verifyRequest pairs a one-time code with the token it was issued in.
type verifyRequest struct {
	Code      string `json:"code"`
	CodeToken string `json:"code_token"`
}

// resetPasswordRequest finishes a password recovery.
type resetPasswordRequest struct {
	Code        string `json:"code"`
	CodeToken   string `json:"code_token"`
	NewPassword string `json:"new_password"`
}

// Login handles the login request and stores the session token in a
// cookie alongside the JSON payload.
func (h *AuthHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.sessionCookie(output.Token, h.tokenSvc.GetSessionDuration()))

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// Register handles client self-registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var input *usecase.RegisterClientInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RegisterClient(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"account":    output.Account,
		"code_token": output.CodeToken,
	}, "Client registered, verification code sent")
}

// Verify confirms a client's email with the mailed code.
func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}

	input := &usecase.VerifyCodeInput{Code: req.Code, CodeToken: req.CodeToken}
	if err := h.uc.VerifyClient(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account verified")
}

// RequestRecovery starts a password recovery flow.
func (h *AuthHandler) RequestRecovery(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recovery input")
	}

	output, err := h.uc.RequestPasswordRecovery(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"code_token": output.CodeToken,
	}, "Recovery code sent")
}

// VerifyRecovery checks a recovery code without consuming it.
func (h *AuthHandler) VerifyRecovery(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}

	input := &usecase.VerifyCodeInput{Code: req.Code, CodeToken: req.CodeToken}
	if err := h.uc.VerifyRecoveryCode(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Recovery code valid")
}

// ResetPassword finishes a recovery by replacing the password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset input")
	}

	input := &usecase.ResetPasswordInput{
		Code:        req.Code,
		CodeToken:   req.CodeToken,
		NewPassword: req.NewPassword,
	}
	if err := h.uc.ResetPassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset")
}

func (h *AuthHandler) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(maxAge),
	}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
