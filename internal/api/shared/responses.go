package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/phrazzld/directions-api/internal/platform/logger"
	"github.com/phrazzld/directions-api/internal/redact"
)

// Content types written by the service.
const (
	ContentTypeJSON    = "application/json;charset=UTF-8"
	ContentTypeGeoJSON = "application/geo+json;charset=UTF-8"
)

// EngineInfo identifies the route engine that served a response.
type EngineInfo struct {
	Version string `json:"version"`
}

// ErrorBody is the client-visible part of a RoutingError.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorInfo accompanies every error response.
type ErrorInfo struct {
	Engine    EngineInfo `json:"engine"`
	Timestamp int64      `json:"timestamp"`
}

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error ErrorBody  `json:"error"`
	Info  *ErrorInfo `json:"info,omitempty"`
}

// RespondWithJSON writes data as JSON with the given status code and
// content type. An empty contentType means ContentTypeJSON.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, contentType string, data interface{}) {
	if contentType == "" {
		contentType = ContentTypeJSON
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			ErrorContext(r.Context(), "failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// RespondWithRoutingError writes rerr as an error response and logs it.
// The status comes from the error category. The underlying cause is
// logged in redacted form and never written to the client.
//
// Log level strategy:
//   - 5xx errors: ERROR
//   - 4xx errors: DEBUG
func RespondWithRoutingError(w http.ResponseWriter, r *http.Request, rerr *domain.RoutingError, info *ErrorInfo) {
	status := rerr.HTTPStatus()

	logAttrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.Int("error_code", rerr.Code()),
		slog.String("user_message", rerr.Message),
	}
	if rerr.Err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(rerr.Err)),
			slog.String("error_type", fmt.Sprintf("%T", rerr.Err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	logger.FromContextOrDefault(r.Context(), slog.Default()).
		LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ContentTypeJSON, ErrorResponse{
		Error: ErrorBody{Code: rerr.Code(), Message: rerr.Message},
		Info:  info,
	})
}
