package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasJSONContentType(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"application/json":                true,
		"application/json; charset=utf-8": true,
		"Application/JSON":                true,
		"application/geo+json":            false,
		"text/plain":                      false,
		"":                                false,
		"application/json; =broken":       false,
	}
	for header, expected := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if header != "" {
			req.Header.Set("Content-Type", header)
		}
		assert.Equal(t, expected, HasJSONContentType(req), header)
	}
}

func TestAcceptsGeoJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"application/geo+json":                       true,
		"application/json, application/geo+json;q=1": true,
		"application/json":                           false,
		"*/*":                                        false,
		"":                                           false,
	}
	for header, expected := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Accept", header)
		}
		assert.Equal(t, expected, AcceptsGeoJSON(req), header)
	}
}
