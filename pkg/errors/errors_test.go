package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorMessage(t *testing.T) {
	cause := errors.New("unexpected mapping")
	err := NewParseError("config.yaml", 12, cause)

	assert.Contains(t, err.Error(), "config.yaml")
	assert.Contains(t, err.Error(), "12")
	assert.ErrorIs(t, err, cause)
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("widgets", "must not be empty", nil)

	assert.Contains(t, err.Error(), "widgets")
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestWidgetErrorWrapsStage(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewWidgetError("vpn", "collect", cause)

	assert.Contains(t, err.Error(), "vpn")
	assert.Contains(t, err.Error(), "collect")
	assert.ErrorIs(t, err, cause)

	var widgetErr *WidgetError
	require.True(t, errors.As(err, &widgetErr))
	assert.Equal(t, "vpn", widgetErr.WidgetID)
}

func TestResolveError(t *testing.T) {
	err := NewResolveError("accent-blu")

	assert.Contains(t, err.Error(), "accent-blu")
}
