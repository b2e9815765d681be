package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

func streamContext(t *testing.T, query string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/stream"+query, nil)
	return ctx, w
}

func TestAuthorizeStream(t *testing.T) {
	jwtService := services.NewJWTService(&config.Config{JWTSecretKey: "stream-secret"}, nil)
	token, err := jwtService.GenerateToken(3, "citizen")
	require.NoError(t, err)

	ctx, _ := streamContext(t, "?token="+token)
	assert.True(t, authorizeStream(ctx, jwtService))
}

func TestAuthorizeStreamMissingToken(t *testing.T) {
	jwtService := services.NewJWTService(&config.Config{JWTSecretKey: "stream-secret"}, nil)

	ctx, w := streamContext(t, "")
	assert.False(t, authorizeStream(ctx, jwtService))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeStreamBadToken(t *testing.T) {
	jwtService := services.NewJWTService(&config.Config{JWTSecretKey: "stream-secret"}, nil)

	ctx, w := streamContext(t, "?token=not.a.token")
	assert.False(t, authorizeStream(ctx, jwtService))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
