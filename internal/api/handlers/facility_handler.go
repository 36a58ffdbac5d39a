package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/caresight/facilityfinder/internal/application/services"
	apperrors "github.com/caresight/facilityfinder/pkg/errors"
)

// FacilityHandler handles facility discovery HTTP requests
type FacilityHandler struct {
	discovery *services.DiscoveryService
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(discovery *services.DiscoveryService) *FacilityHandler {
	return &FacilityHandler{
		discovery: discovery,
	}
}

// NearbyFacilities handles GET /api/facilities/nearby
func (h *FacilityHandler) NearbyFacilities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lat is required and must be numeric")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lon is required and must be numeric")
		return
	}

	radiusMeters := 0
	if raw := query.Get("radius"); raw != "" {
		radiusMeters, err = strconv.Atoi(raw)
		if err != nil || radiusMeters < 0 {
			respondWithError(w, http.StatusBadRequest, "radius must be a non-negative integer")
			return
		}
	}

	records, err := h.discovery.FindNearby(r.Context(), lat, lon, radiusMeters)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeExternal:
				respondWithError(w, http.StatusBadGateway, "geospatial source unavailable")
			case apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": records,
		"count":      len(records),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
