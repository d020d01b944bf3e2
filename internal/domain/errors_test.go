package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingErrorCodesAndStatus(t *testing.T) {
	tests := []struct {
		name           string
		err            *RoutingError
		expectedCode   int
		expectedStatus int
	}{
		{"invalid json", NewInvalidJSONFormat("options", nil), 2000, http.StatusBadRequest},
		{"missing parameter", NewMissingParameter("coordinates"), 2001, http.StatusBadRequest},
		{"invalid format", NewInvalidParameterFormat("coordinates", nil), 2002, http.StatusBadRequest},
		{"invalid value", NewInvalidParameterValue("units", "j"), 2003, http.StatusBadRequest},
		{"server limit", NewServerLimitExceeded("too far"), 2004, http.StatusBadRequest},
		{"unknown", NewUnknown(errors.New("boom")), 2099, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, tt.err.Code())
			assert.Equal(t, tt.expectedStatus, tt.err.HTTPStatus())
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestAsRoutingError(t *testing.T) {
	assert.Nil(t, AsRoutingError(nil))

	missing := NewMissingParameter("profile")
	wrapped := fmt.Errorf("validating: %w", missing)
	assert.Same(t, missing, AsRoutingError(wrapped))

	cause := errors.New("engine exploded")
	rerr := AsRoutingError(cause)
	require.NotNil(t, rerr)
	assert.Equal(t, Unknown, rerr.Category)
	assert.ErrorIs(t, rerr, cause)
}

func TestRoutingErrorMessageHidesCause(t *testing.T) {
	rerr := NewInvalidParameterFormat("maximum_speed", errors.New("strconv: 25fgf"))
	assert.NotContains(t, rerr.Message, "25fgf")
	assert.Contains(t, rerr.Error(), "25fgf")
	assert.Equal(t, "InvalidParameterFormat", rerr.Category.String())
}
