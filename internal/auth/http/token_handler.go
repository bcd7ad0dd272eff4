package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hajjcare/accounts/internal/auth/http/dto"
	authUseCase "github.com/hajjcare/accounts/internal/auth/usecase"
	"github.com/hajjcare/accounts/internal/httputil"
)

// TokenHandler handles HTTP requests for the token lifecycle.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// GrantHandler exchanges a credential for an access and refresh token pair.
// POST /v1/token - no authentication, rate limited per IP.
// Returns 200 OK with {access_token, refresh_token}.
func (h *TokenHandler) GrantHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	req, err := dto.DecodeGrantTokenRequest(body)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	grant := req.ToDomain()
	if req.HasTypeErrors() {
		httputil.HandleErrorGin(c, grant.Validate(), h.logger)
		return
	}

	pair, err := h.tokenUseCase.Grant(c.Request.Context(), grant)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenPairToResponse(pair))
}

// RevokeHandler revokes the refresh token in the request body (logout).
// POST /v1/token/revoke - requires a bearer access token.
// Returns 200 OK with {"message": "Logout successfully"}.
func (h *TokenHandler) RevokeHandler(c *gin.Context) {
	var req dto.RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), req.RefreshToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if claims, ok := GetClaims(c.Request.Context()); ok {
		h.logger.Info("refresh token revoked", slog.Int64("account_id", claims.Subject))
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logout successfully"})
}
