package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Wrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := ErrNetworkFailure.Wrap(cause)

	assert.Equal(t, "NETWORK_FAILURE: Remote service request failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.NotErrorIs(t, err, ErrDecodeFailure)

	// предопределенная ошибка не меняется
	assert.Nil(t, ErrNetworkFailure.Unwrap())
}

func TestAppError_WithDetails(t *testing.T) {
	err := ErrInvalidFilter.WithDetails(map[string]interface{}{"filter": "bad"})

	assert.Equal(t, "bad", err.Details["filter"])
	assert.Empty(t, ErrInvalidFilter.Details)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("save filters: %w", ErrStoreError.Wrap(stderrors.New("timeout")))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "STORE_ERROR", appErr.Code)

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}
