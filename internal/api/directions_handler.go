package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/directions-api/internal/api/shared"
	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/phrazzld/directions-api/internal/platform/logger"
	"github.com/phrazzld/directions-api/internal/service"
	"github.com/phrazzld/directions-api/internal/validation"
)

// DefaultMaxBodyBytes bounds POST bodies.
const DefaultMaxBodyBytes = 1 << 20

// ProfileParam is the chi URL parameter holding the path profile.
const ProfileParam = "profile"

// DirectionsHandler serves the directions endpoints.
type DirectionsHandler struct {
	service      service.DirectionsService
	responses    *ResponseAssembler
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewDirectionsHandler creates a new DirectionsHandler. A non-positive
// maxBodyBytes selects DefaultMaxBodyBytes.
func NewDirectionsHandler(
	svc service.DirectionsService,
	responses *ResponseAssembler,
	maxBodyBytes int64,
	logger *slog.Logger,
) *DirectionsHandler {
	if logger == nil {
		panic("logger cannot be nil for DirectionsHandler") // ALLOW-PANIC: constructor enforcing required dependency
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &DirectionsHandler{
		service:      svc,
		responses:    responses,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.With(slog.String("component", "directions_handler")),
	}
}

// Routes registers the directions endpoints on r.
func (h *DirectionsHandler) Routes(r chi.Router) {
	r.Get("/v2/directions", h.GetDirections)
	r.Post("/v2/directions", h.PostDirections)
	r.Post("/v2/directions/{"+ProfileParam+"}", h.PostDirections)
}

// PostDirections handles POST /v2/directions and POST /v2/directions/{profile}.
func (h *DirectionsHandler) PostDirections(w http.ResponseWriter, r *http.Request) {
	if !shared.HasJSONContentType(r) {
		h.respondError(w, r, domain.NewInvalidParameterFormat("Content-Type",
			fmt.Errorf("unsupported content type %q", r.Header.Get("Content-Type"))))
		return
	}

	raw, err := validation.DecodeBody(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, r, domain.NewServerLimitExceeded(fmt.Sprintf(
				"Request body exceeds the server limit of %s.", humanize.IBytes(uint64(tooLarge.Limit)))))
			return
		}
		h.respondError(w, r, err)
		return
	}

	h.directions(w, r, raw, chi.URLParam(r, ProfileParam))
}

// GetDirections handles GET /v2/directions. Every field arrives as a query
// parameter, including the profile.
func (h *DirectionsHandler) GetDirections(w http.ResponseWriter, r *http.Request) {
	h.directions(w, r, validation.FromQuery(r.URL.Query()), "")
}

func (h *DirectionsHandler) directions(w http.ResponseWriter, r *http.Request, raw validation.RawRequest, pathProfile string) {
	rt := domain.ResponseJSON
	contentType := shared.ContentTypeJSON
	if shared.AcceptsGeoJSON(r) {
		rt = domain.ResponseGeoJSON
		contentType = shared.ContentTypeGeoJSON
	}

	dir, err := h.service.Directions(r.Context(), raw, pathProfile, rt)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	body, err := h.responses.Assemble(dir.Request, dir.Result)
	if err != nil {
		h.respondError(w, r, domain.NewUnknown(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contentType, body)
}

// Health handles GET /health.
func (h *DirectionsHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, shared.ContentTypeJSON, HealthResponse{
		Status: "ready",
		Engine: h.responses.Engine(),
	})
}

func (h *DirectionsHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := logger.WithLogger(r.Context(), logger.FromContextOrDefault(r.Context(), h.logger))
	shared.RespondWithRoutingError(w, r.WithContext(ctx), domain.AsRoutingError(err), h.responses.ErrorInfo())
}
