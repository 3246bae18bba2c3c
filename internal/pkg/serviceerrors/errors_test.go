package serviceerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"encryption-service/internal/pkg/logger"
)

func TestAppErrorFromError(t *testing.T) {
	base := errors.New("disk on fire")

	appErr := AppErrorFromError(base)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.ErrorIs(t, appErr, base)

	wrapped := fmt.Errorf("create session: %w", NewNotFound("session not found"))
	appErr = AppErrorFromError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "session not found", appErr.Error())
}

func TestAppError_Is(t *testing.T) {
	assert.ErrorIs(t, NewAuthorization(), NewAuthorization())
	assert.NotErrorIs(t, NewAuthorization(), NewValidation("invalid method"))
}

func TestAppError_String(t *testing.T) {
	err := NewValidation("invalid action").Wrap(nil, "action must be encrypt or decrypt")
	assert.JSONEq(t,
		`{"message":"invalid action","description":"action must be encrypt or decrypt"}`,
		err.String())
}

func TestLogServerError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

	NewValidation("bad").LogServerError(ctx)
	assert.Equal(t, 0, logs.Len())

	NewAppError(errors.New("boom")).LogServerError(ctx)
	assert.Equal(t, 1, logs.Len())
}
