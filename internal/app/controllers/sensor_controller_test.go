package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx
}

func TestStoreReadingRequestAcceptsZeroValue(t *testing.T) {
	// 0 is a legitimate measurement: normal for turbidity, a no-flow
	// breach for flow. It must bind, not fail the required check.
	ctx := jsonContext(t, `{"value": 0, "type": "turbidity"}`)

	var req StoreReadingRequest
	require.NoError(t, ctx.ShouldBindJSON(&req))
	require.NotNil(t, req.Value)
	assert.Equal(t, 0.0, *req.Value)
}

func TestStoreReadingRequestRequiresValue(t *testing.T) {
	ctx := jsonContext(t, `{"type": "flow"}`)

	var req StoreReadingRequest
	assert.Error(t, ctx.ShouldBindJSON(&req))
}
