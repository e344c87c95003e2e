package handlers

import (
	"fmt"
	"net/http"

	"reactivemesh/helpers"
	"reactivemesh/interfaces"

	"github.com/labstack/echo/v4"
)

// AccountsHandler serves the account document collection.
type AccountsHandler struct {
	store interfaces.AccountStore
}

// NewAccountsHandler creates the handler of GET /account/all. Panics on nil store.
func NewAccountsHandler(store interfaces.AccountStore) *AccountsHandler {
	return &AccountsHandler{store: helpers.NilPanic(store, "handlers.accounts.go: store is required")}
}

// All (GET /account/all) returns every account ordered by name as a JSON array.
func (h *AccountsHandler) All(c echo.Context) error {
	accounts, err := h.store.FindAll(c.Request().Context())
	if err != nil {
		return fmt.Errorf("accounts failed to list, err: %w", err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// RegisterAccountRoutes adds the account-service HTTP routes: GET /account/all and GET /account/sse/:name.
//
// Called from cmd/account main.
func RegisterAccountRoutes(e *echo.Echo, accounts *AccountsHandler, sse *StreamHandler) {
	e.GET("/account/all", accounts.All)
	e.GET("/account/sse/:name", sse.Stream)
}

// RegisterProfileRoutes adds the profile-service HTTP route GET /profile/sse/:name.
//
// Called from cmd/profile main.
func RegisterProfileRoutes(e *echo.Echo, sse *StreamHandler) {
	e.GET("/profile/sse/:name", sse.Stream)
}
