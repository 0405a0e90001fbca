package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tripwise/pkg/errors"
	"github.com/zatekoja/tripwise/pkg/geo"
)

// UserIDHeader carries the authenticated caller, set by the gateway
const UserIDHeader = "X-User-ID"

// RecommendationService is the subset of the service the handler needs
type RecommendationService interface {
	Recommend(ctx context.Context, userID string, limit int) ([]*entities.Place, error)
	RecommendNear(ctx context.Context, userID string, center *geo.Coordinates, radiusKm *float64, limit int) ([]*entities.Place, error)
}

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	service RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

type recommendationResponse struct {
	Recommended []*entities.Place `json:"recommended"`
}

// GetHybrid handles GET /api/recommend/hybrid
func (h *RecommendationHandler) GetHybrid(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	limit, err := optionalInt(r, "limit")
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	places, err := h.service.Recommend(r.Context(), userID, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond(w, places)
}

// GetHybridByLocation handles GET /api/recommend/hybrid/location
func (h *RecommendationHandler) GetHybridByLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	center, err := optionalCenter(r)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	radius, err := optionalRadius(r)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	limit, err := optionalInt(r, "limit")
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	places, err := h.service.RecommendNear(r.Context(), userID, center, radius, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respond(w, places)
}

func (h *RecommendationHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound, apperrors.ErrorTypeValidation:
	default:
		observability.LoggerFromContext(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("recommendation failed")
	}
	respondWithAppError(w, err)
}

func respond(w http.ResponseWriter, places []*entities.Place) {
	if places == nil {
		places = []*entities.Place{}
	}
	respondWithJSON(w, http.StatusOK, recommendationResponse{Recommended: places})
}

func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "missing "+UserIDHeader+" header")
		return "", false
	}
	return userID, true
}

// optionalCenter returns nil when neither lat nor lng is given
func optionalCenter(r *http.Request) (*geo.Coordinates, error) {
	q := r.URL.Query()
	rawLat, rawLng := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lng"))
	if rawLat == "" && rawLng == "" {
		return nil, nil
	}
	if rawLat == "" || rawLng == "" {
		return nil, apperrors.NewValidationError("lat and lng must be provided together")
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, apperrors.NewValidationError("lat must be a number between -90 and 90")
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil || math.IsNaN(lng) || lng < -180 || lng > 180 {
		return nil, apperrors.NewValidationError("lng must be a number between -180 and 180")
	}

	return &geo.Coordinates{Latitude: lat, Longitude: lng}, nil
}

// optionalInt returns 0 for an absent parameter so the service default applies
func optionalInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(name + " must be an integer")
	}
	if value < 0 {
		return 0, apperrors.NewValidationError(name + " must not be negative")
	}
	return value, nil
}

// optionalRadius returns nil for an absent radius. Zero is a valid radius.
func optionalRadius(r *http.Request) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("radius"))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, apperrors.NewValidationError("radius must be a number")
	}
	if value < 0 {
		return nil, apperrors.NewValidationError("radius must not be negative")
	}
	return &value, nil
}
