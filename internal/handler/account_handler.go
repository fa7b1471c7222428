package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/eaglebank/account-service/internal/cqrs"
	"github.com/eaglebank/account-service/internal/middleware"
	"github.com/eaglebank/account-service/internal/models"
	"github.com/eaglebank/account-service/internal/repository"
	"github.com/gin-gonic/gin"
)

// AccountsPath is the collection path all account routes hang off.
const AccountsPath = "/accounts"

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) (*models.Account, error)
	UpdateAccount(context.Context, cqrs.UpdateAccountCommand) (*models.Account, error)
	DeleteAccount(context.Context, cqrs.DeleteAccountCommand) error
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(context.Context, cqrs.GetAccountQuery) (*models.Account, error)
	ListAccounts(context.Context, cqrs.ListAccountsQuery) ([]models.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

// AccountRequest is the payload for both create and full-replace update.
type AccountRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Email       string `json:"email" validate:"required,max=64"`
	Address     string `json:"address" validate:"max=256"`
	PhoneNumber string `json:"phone_number" validate:"max=32"`
	DateJoined  string `json:"date_joined" validate:"omitempty,datetime=2006-01-02"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

// Register mounts the account routes on r.
func (h *AccountHandler) Register(r gin.IRouter) {
	r.GET("", h.ListAccounts)
	r.POST("", middleware.RequireContentType(gin.MIMEJSON), h.CreateAccount)
	r.GET("/:id", h.GetAccount)
	r.PUT("/:id", h.UpdateAccount)
	r.DELETE("/:id", h.DeleteAccount)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{})
	if err != nil {
		_ = c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	req, dateJoined, reqErr := parseAccountRequest(c)
	if reqErr != nil {
		reqErr.respond(c)
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		DateJoined:  dateJoined,
	})
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, repository.ErrInvalidAccount) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account data")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	c.Header("Location", absoluteURL(c, fmt.Sprintf("%s/%d", AccountsPath, account.ID)))
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	account, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{ID: id})
	if err != nil {
		respondWithLookupError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateAccount replaces the account. An unknown ID is always 404, even when
// the payload is also invalid. A valid payload goes straight to the command,
// whose own lookup reports a missing account.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	req, dateJoined, reqErr := parseAccountRequest(c)
	if reqErr != nil {
		if _, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{ID: id}); err != nil {
			respondWithLookupError(c, err, "Failed to update account")
			return
		}
		reqErr.respond(c)
		return
	}

	account, err := h.commands.UpdateAccount(c.Request.Context(), cqrs.UpdateAccountCommand{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		DateJoined:  dateJoined,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidAccount) {
			_ = c.Error(err)
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account data")
			return
		}
		respondWithLookupError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, account)
}

// DeleteAccount always answers 204 when the store call succeeds, whether or
// not the account existed. An integer ID outside the column range was never
// assigned, so it is answered the same way without touching the store.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, err := parseAccountID(c.Param("id"))
	if errors.Is(err, strconv.ErrRange) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	if err := h.commands.DeleteAccount(c.Request.Context(), cqrs.DeleteAccountCommand{ID: id}); err != nil {
		_ = c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}

// parseAccountID accepts the range of the accounts.id SERIAL column.
func parseAccountID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 32)
}

// accountID parses the :id path parameter. Anything that is not an integer
// in range cannot name an account and is answered with 404.
func accountID(c *gin.Context) (int64, bool) {
	id, err := parseAccountID(c.Param("id"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return 0, false
	}
	return id, true
}

// requestError is a rejected payload, held until the caller decides to send it.
type requestError struct {
	cause      error
	message    string
	validation []middleware.ValidationError
}

func (e *requestError) respond(c *gin.Context) {
	if e.cause != nil {
		_ = c.Error(e.cause)
	}
	if e.validation != nil {
		middleware.RespondWithValidationError(c, e.validation)
		return
	}
	middleware.RespondWithError(c, http.StatusBadRequest, e.message)
}

func parseAccountRequest(c *gin.Context) (AccountRequest, models.Date, *requestError) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, models.Date{}, &requestError{cause: err, message: "Invalid request body"}
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		return req, models.Date{}, &requestError{validation: validationErrors}
	}

	var dateJoined models.Date
	if req.DateJoined != "" {
		d, err := models.ParseDate(req.DateJoined)
		if err != nil {
			return req, models.Date{}, &requestError{message: err.Error()}
		}
		dateJoined = d
	}
	return req, dateJoined, nil
}

func respondWithLookupError(c *gin.Context, err error, failure string) {
	if errors.Is(err, repository.ErrAccountNotFound) {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}
	_ = c.Error(err)
	middleware.RespondWithError(c, http.StatusInternalServerError, failure)
}

// absoluteURL builds an external URL for path from the incoming request.
// X-Forwarded-Proto is honoured only when it names http or https.
func absoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto"))); proto {
	case "http", "https":
		scheme = proto
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, path)
}
