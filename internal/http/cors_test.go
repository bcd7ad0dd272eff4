package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{name: "disabled", enabled: false, origins: "https://app.hajjcare.example", wantNil: true},
		{name: "enabled without origins", enabled: true, origins: "", wantNil: true},
		{name: "enabled with blank origins", enabled: true, origins: " , ", wantNil: true},
		{name: "enabled", enabled: true, origins: "https://app.hajjcare.example", wantNil: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			assert.Equal(t, tt.wantNil, middleware == nil)
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t,
		[]string{"https://app.hajjcare.example", "https://admin.hajjcare.example"},
		parseOrigins(" https://app.hajjcare.example ,https://admin.hajjcare.example,"),
	)
	assert.Nil(t, parseOrigins(""))
}

func TestCORSMiddleware_Requests(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(createCORSMiddleware(true, "https://app.hajjcare.example", logger))
	router.POST("/v1/token", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("PreflightFromAllowedOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/token", nil)
		req.Header.Set("Origin", "https://app.hajjcare.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.hajjcare.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("RequestFromOtherOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/token", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
