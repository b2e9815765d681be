package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMessage(t *testing.T) {
	assert.Equal(t, "success", GetMessage(ErrSuccess))
	assert.Equal(t, "sensor not found", GetMessage(ErrSensorNotFound))
	assert.Equal(t, "unknown error", GetMessage(999999))
}

func TestGetStatus(t *testing.T) {
	assert.Equal(t, StatusOK, GetStatus(ErrSuccess))
	assert.Equal(t, StatusNotFound, GetStatus(ErrAlertNotFound))
	assert.Equal(t, StatusUnauthorized, GetStatus(ErrTokenInvalid))
	assert.Equal(t, StatusTooManyRequests, GetStatus(ErrTooManyRequests))
	assert.Equal(t, StatusInternalServerError, GetStatus(999999))
}

func TestEveryCodeHasMessageAndStatus(t *testing.T) {
	for c := range codeMessageMap {
		_, ok := codeStatusMap[c]
		assert.True(t, ok, "code %d has a message but no HTTP status", c)
	}
	for c := range codeStatusMap {
		_, ok := codeMessageMap[c]
		assert.True(t, ok, "code %d has an HTTP status but no message", c)
	}
}
