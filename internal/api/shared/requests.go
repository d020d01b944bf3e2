package shared

import (
	"mime"
	"net/http"
	"strings"
)

// Media types negotiated by the directions endpoints.
const (
	MediaTypeJSON    = "application/json"
	MediaTypeGeoJSON = "application/geo+json"
)

// HasJSONContentType reports whether the request body is declared as JSON.
// Parameters such as charset are accepted.
func HasJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == MediaTypeJSON
}

// AcceptsGeoJSON reports whether the Accept header asks for GeoJSON. Any
// listed geo+json media range wins over plain JSON.
func AcceptsGeoJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == MediaTypeGeoJSON {
			return true
		}
	}
	return false
}
