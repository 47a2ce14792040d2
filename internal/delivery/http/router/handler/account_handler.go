package handler

import (
	"log/slog"
	"net/http"

	"workbuddy/internal/delivery/http/response"
	"workbuddy/internal/domain/entity"
	"workbuddy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler serves back-office account management for both client
// and employee collections. The target collection comes from the route.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{uc: uc, logger: logger}
}

// ListClients returns every client account.
func (h *AccountHandler) ListClients(c echo.Context) error {
	return h.list(c, entity.UserTypeClient)
}

// GetClient returns one client account.
func (h *AccountHandler) GetClient(c echo.Context) error {
	return h.get(c, entity.UserTypeClient)
}

// CreateClient creates a client account.
func (h *AccountHandler) CreateClient(c echo.Context) error {
	return h.create(c, entity.UserTypeClient)
}

// UpdateClient applies a partial update to a client account.
func (h *AccountHandler) UpdateClient(c echo.Context) error {
	return h.update(c, entity.UserTypeClient)
}

// DeleteClient removes a client account.
func (h *AccountHandler) DeleteClient(c echo.Context) error {
	return h.delete(c, entity.UserTypeClient)
}

// ListEmployees returns every employee account.
func (h *AccountHandler) ListEmployees(c echo.Context) error {
	return h.list(c, entity.UserTypeEmployee)
}

// GetEmployee returns one employee account.
func (h *AccountHandler) GetEmployee(c echo.Context) error {
	return h.get(c, entity.UserTypeEmployee)
}

// CreateEmployee creates an employee account.
func (h *AccountHandler) CreateEmployee(c echo.Context) error {
	return h.create(c, entity.UserTypeEmployee)
}

// UpdateEmployee applies a partial update to an employee account.
func (h *AccountHandler) UpdateEmployee(c echo.Context) error {
	return h.update(c, entity.UserTypeEmployee)
}

// DeleteEmployee removes an employee account.
func (h *AccountHandler) DeleteEmployee(c echo.Context) error {
	return h.delete(c, entity.UserTypeEmployee)
}

func (h *AccountHandler) list(c echo.Context, userType entity.UserType) error {
	accounts, err := h.uc.ListAccounts(c.Request().Context(), userType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, accounts, "")
}

func (h *AccountHandler) get(c echo.Context, userType entity.UserType) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	account, err := h.uc.GetAccount(c.Request().Context(), userType, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "")
}

func (h *AccountHandler) create(c echo.Context, userType entity.UserType) error {
	var input *usecase.CreateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.CreateAccount(c.Request().Context(), userType, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, account, "Account created")
}

func (h *AccountHandler) update(c echo.Context, userType entity.UserType) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	var input *usecase.UpdateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}

	account, err := h.uc.UpdateAccount(c.Request().Context(), userType, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "Account updated")
}

func (h *AccountHandler) delete(c echo.Context, userType entity.UserType) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), userType, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}
