package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
	"github.com/hajjcare/accounts/internal/auth/http/dto"
	usecaseMocks "github.com/hajjcare/accounts/internal/auth/usecase/mocks"
	apperrors "github.com/hajjcare/accounts/internal/errors"
)

func setupTokenTestHandler(t *testing.T) (*gin.Engine, *usecaseMocks.MockTokenUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockTokenUseCase := &usecaseMocks.MockTokenUseCase{}
	handler := NewTokenHandler(mockTokenUseCase, newTestLogger())

	router := gin.New()
	router.POST("/v1/token", handler.GrantHandler)
	router.POST("/v1/token/revoke", handler.RevokeHandler)
	return router, mockTokenUseCase
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTokenHandler_GrantHandler(t *testing.T) {
	t.Run("Success_PasswordGrant", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		expected := &authDomain.GrantRequest{
			GrantType: authDomain.GrantTypePassword,
			Username:  "alice",
			Password:  "correct",
		}
		mockUseCase.On("Grant", mock.Anything, expected).
			Return(&authDomain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil).
			Once()

		w := postJSON(router, "/v1/token",
			`{"grant_type":"username:password","username":"alice","password":"correct"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "access", response.AccessToken)
		assert.Equal(t, "refresh", response.RefreshToken)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_FieldNamesFollowTheWireFormat", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		expected := &authDomain.GrantRequest{
			GrantType:    authDomain.GrantTypeRefreshToken,
			RefreshToken: "eyJ.refresh",
		}
		mockUseCase.On("Grant", mock.Anything, expected).
			Return(&authDomain.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil).
			Once()

		w := postJSON(router, "/v1/token", `{"grant_type":"refresh_token","refresh_token":"eyJ.refresh"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		mockUseCase.On("Grant", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrInvalidCredentials).
			Once()

		w := postJSON(router, "/v1/token",
			`{"grant_type":"username:password","username":"alice","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "UnauthorizedException", response.Name)
		assert.Equal(t, "invalid username or password", response.Message)
		assert.NotContains(t, w.Body.String(), "access_token")
	})

	t.Run("Error_ValidationListsFields", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		mockUseCase.On("Grant", mock.Anything, mock.Anything).
			Return(nil, apperrors.Invalid("validation failed", map[string]string{
				"username": "cannot be blank",
				"password": "cannot be blank",
			})).
			Once()

		w := postJSON(router, "/v1/token", `{"grant_type":"username:password"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "ValidationException", response.Name)
		assert.Len(t, response.Errors, 2)
	})

	t.Run("Error_WrongFieldTypeListedWithOtherFields", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		w := postJSON(router, "/v1/token", `{"grant_type":"username:password","username":123}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "ValidationException", response.Name)
		assert.Equal(t, "validation failed", response.Message)
		assert.Equal(t, "must be a string", response.Errors["username"])
		assert.Contains(t, response.Errors, "password")
		mockUseCase.AssertNotCalled(t, "Grant", mock.Anything, mock.Anything)
	})

	t.Run("Error_WrongGrantTypeType", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		w := postJSON(router, "/v1/token", `{"grant_type":["national_id"]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "must be a string", decodeError(t, w).Errors["grant_type"])
		mockUseCase.AssertNotCalled(t, "Grant", mock.Anything, mock.Anything)
	})

	t.Run("Error_BodyNotAnObject", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		w := postJSON(router, "/v1/token", `["username:password"]`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "request body must be valid JSON", response.Message)
		assert.Empty(t, response.Errors)
		mockUseCase.AssertNotCalled(t, "Grant", mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		w := postJSON(router, "/v1/token", `{"grant_type":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ValidationException", decodeError(t, w).Name)
		mockUseCase.AssertNotCalled(t, "Grant", mock.Anything, mock.Anything)
	})

	t.Run("Error_InternalHidesDetail", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		mockUseCase.On("Grant", mock.Anything, mock.Anything).
			Return(nil, apperrors.New("pq: password authentication failed for user hajjcare")).
			Once()

		w := postJSON(router, "/v1/token", `{"grant_type":"national_id","nationalId":"29001011234567"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "Internal Server Error", response.Message)
		assert.False(t, strings.Contains(w.Body.String(), "pq:"))
	})
}

func TestTokenHandler_RevokeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		mockUseCase.On("Revoke", mock.Anything, "eyJ.refresh").Return(nil).Once()

		w := postJSON(router, "/v1/token/revoke", `{"refreshToken":"eyJ.refresh"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Logout successfully"}`, w.Body.String())
	})

	t.Run("Error_MissingRefreshToken", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		mockUseCase.On("Revoke", mock.Anything, "").Return(authDomain.ErrRefreshTokenRequired).Once()

		w := postJSON(router, "/v1/token/revoke", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "refresh token is required", decodeError(t, w).Message)
	})

	t.Run("Error_AlreadyRevoked", func(t *testing.T) {
		router, mockUseCase := setupTokenTestHandler(t)

		mockUseCase.On("Revoke", mock.Anything, "eyJ.refresh").Return(authDomain.ErrRefreshTokenRevoked).Once()

		w := postJSON(router, "/v1/token/revoke", `{"refreshToken":"eyJ.refresh"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "refresh token is already revoked", decodeError(t, w).Message)
	})

	t.Run("Error_EmptyBody", func(t *testing.T) {
		router, _ := setupTokenTestHandler(t)

		w := postJSON(router, "/v1/token/revoke", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
