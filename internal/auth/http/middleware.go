package http

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
	authService "github.com/hajjcare/accounts/internal/auth/service"
	apperrors "github.com/hajjcare/accounts/internal/errors"
	"github.com/hajjcare/accounts/internal/httputil"
)

const bearerPrefix = "bearer "

// bearerToken extracts the credential from an Authorization header. The scheme is
// matched case-insensitively; a header with another scheme is returned whole so that
// verification rejects it as invalid.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	if strings.EqualFold(header, strings.TrimSpace(bearerPrefix)) {
		return ""
	}
	return header
}

// AuthenticationMiddleware verifies the bearer access token of every request.
//
// Error handling:
//   - Missing Authorization header or empty bearer credential → 401 "token missing"
//   - Expired token → 401 "token has expired"
//   - Any other verification failure, including refresh tokens → 401 "token is invalid"
//
// On success the verified claims are available to downstream handlers via GetClaims.
func AuthenticationMiddleware(codec authService.TokenCodec, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			logger.Debug("authentication failed: missing bearer token")
			httputil.HandleErrorGin(c, authDomain.ErrBearerMissing, logger)
			c.Abort()
			return
		}

		claims, err := codec.Verify(token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			if errors.Is(err, authDomain.ErrTokenExpired) {
				httputil.HandleErrorGin(c, authDomain.ErrBearerExpired, logger)
			} else {
				httputil.HandleErrorGin(c, authDomain.ErrBearerInvalid, logger)
			}
			c.Abort()
			return
		}
		if claims.Type != authDomain.TokenTypeAccess {
			logger.Debug("authentication failed: refresh token presented as bearer")
			httputil.HandleErrorGin(c, authDomain.ErrBearerInvalid, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))

		logger.Debug("authentication successful",
			slog.Int64("account_id", claims.Subject),
			slog.String("role", claims.Role.String()))

		c.Next()
	}
}

// RequireRoles admits requests whose verified role is one of roles.
//
// It must run after AuthenticationMiddleware. The checks run in this order:
//  1. A required role outside the role set is a programming error → 500, logged.
//  2. No claims in the context → 401.
//  3. Claims without a role → 401.
//  4. Role not among roles → 403.
func RequireRoles(logger *slog.Logger, roles ...accountDomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, role := range roles {
			if !role.IsValid() {
				logger.Error("route requires an unknown role", slog.String("role", role.String()))
				httputil.HandleErrorGin(c, errors.New("invalid role: "+role.String()), logger)
				c.Abort()
				return
			}
		}

		claims, ok := GetClaims(c.Request.Context())
		if !ok || claims.Role == "" {
			logger.Debug("authorization failed: no authenticated role")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		logger.Debug("authorization failed: role not allowed",
			slog.Int64("account_id", claims.Subject),
			slog.String("role", claims.Role.String()))
		httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
		c.Abort()
	}
}
