package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	"github.com/hajjcare/accounts/internal/account/http/dto"
	"github.com/hajjcare/accounts/internal/account/usecase/mocks"
	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
	authHTTP "github.com/hajjcare/accounts/internal/auth/http"
	"github.com/hajjcare/accounts/internal/httputil"
)

func strPtr(s string) *string { return &s }

func withClaims(claims *authDomain.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims != nil {
			c.Request = c.Request.WithContext(authHTTP.WithClaims(c.Request.Context(), claims))
		}
		c.Next()
	}
}

func setupAccountTestHandler(t *testing.T, claims *authDomain.Claims) (*gin.Engine, *mocks.MockAccountUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockAccountUseCase{}
	handler := NewAccountHandler(mockUseCase, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	router.Use(withClaims(claims))
	router.GET("/v1/me", handler.MeHandler)
	router.GET("/v1/accounts/:id", handler.GetHandler)
	return router, mockUseCase
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestAccountHandler_MeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mockUseCase := setupAccountTestHandler(t, &authDomain.Claims{
			Subject: 42,
			Role:    accountDomain.RolePilgrim,
			Type:    authDomain.TokenTypeAccess,
		})

		mockUseCase.On("Get", mock.Anything, int64(42)).Return(&accountDomain.Account{
			ID:             42,
			NationalID:     strPtr("29001011234567"),
			Role:           accountDomain.RolePilgrim,
			HashedPassword: strPtr("$argon2id$v=19$secret"),
			CreatedAt:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		}, nil).Once()

		w := get(router, "/v1/me")

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.AccountResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(42), response.ID)
		assert.Equal(t, "pilgrim", response.Role)
		assert.True(t, response.HasPassword)
		assert.NotContains(t, w.Body.String(), "argon2id")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_NoClaims", func(t *testing.T) {
		router, mockUseCase := setupAccountTestHandler(t, nil)

		w := get(router, "/v1/me")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUseCase.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_AccountDeleted", func(t *testing.T) {
		router, mockUseCase := setupAccountTestHandler(t, &authDomain.Claims{Subject: 9, Role: accountDomain.RoleDoctor})

		mockUseCase.On("Get", mock.Anything, int64(9)).Return(nil, accountDomain.ErrAccountNotFound).Once()

		w := get(router, "/v1/me")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAccountHandler_GetHandler(t *testing.T) {
	admin := &authDomain.Claims{Subject: 1, Role: accountDomain.RoleAdmin}

	t.Run("Success", func(t *testing.T) {
		router, mockUseCase := setupAccountTestHandler(t, admin)

		mockUseCase.On("Get", mock.Anything, int64(5)).Return(&accountDomain.Account{
			ID:       5,
			Username: strPtr("moderator1"),
			Role:     accountDomain.RoleModerator,
		}, nil).Once()

		w := get(router, "/v1/accounts/5")

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.AccountResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.Username)
		assert.Equal(t, "moderator1", *response.Username)
		assert.False(t, response.HasPassword)
	})

	for _, id := range []string{"abc", "0", "-3"} {
		t.Run("Error_InvalidID_"+id, func(t *testing.T) {
			router, mockUseCase := setupAccountTestHandler(t, admin)

			w := get(router, "/v1/accounts/"+id)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var response httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "must be a positive integer", response.Errors["id"])
			mockUseCase.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		})
	}

	t.Run("Error_NotFound", func(t *testing.T) {
		router, mockUseCase := setupAccountTestHandler(t, admin)

		mockUseCase.On("Get", mock.Anything, int64(77)).Return(nil, accountDomain.ErrAccountNotFound).Once()

		w := get(router, "/v1/accounts/77")

		assert.Equal(t, http.StatusNotFound, w.Code)
		var response httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "NotFoundException", response.Name)
	})
}
