// Package http provides HTTP handlers for account profile reads.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hajjcare/accounts/internal/account/http/dto"
	accountUseCase "github.com/hajjcare/accounts/internal/account/usecase"
	authHTTP "github.com/hajjcare/accounts/internal/auth/http"
	apperrors "github.com/hajjcare/accounts/internal/errors"
	"github.com/hajjcare/accounts/internal/httputil"
)

// AccountHandler serves profile reads for authenticated callers.
type AccountHandler struct {
	accountUseCase accountUseCase.AccountUseCase
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(accountUseCase accountUseCase.AccountUseCase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// MeHandler returns the profile of the bearer token's subject.
// GET /v1/me - requires a bearer access token.
func (h *AccountHandler) MeHandler(c *gin.Context) {
	claims, ok := authHTTP.GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	account, err := h.accountUseCase.Get(c.Request.Context(), claims.Subject)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}

// GetHandler returns the profile of any account.
// GET /v1/accounts/:id - requires role admin or moderator.
func (h *AccountHandler) GetHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.HandleErrorGin(c, apperrors.Invalid("invalid account id", map[string]string{
			"id": "must be a positive integer",
		}), h.logger)
		return
	}

	account, err := h.accountUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}
