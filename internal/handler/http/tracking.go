package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/service"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
)

func (h *Handler) trackHabit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	habitID, ok := urlParamInt64(w, r, "habitID")
	if !ok {
		return
	}

	// The body is optional: an empty POST records a completion "now".
	var req models.TrackHabitRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Err(err).Msg("invalid JSON was passed")
			writeBadRequest(w, "invalid JSON was passed")
			return
		}
		if err := h.validate.Struct(req); err != nil {
			log.Err(err).Msg("track habit request failed validation")
			writeBadRequest(w, "invalid data provided")
			return
		}
	}

	tracking, err := h.services.TrackingService.LogCompletion(ctx, userID, habitID, req)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("logging completion failed")
		writeError(w, err)
		return
	}

	log.Debug().
		Int64("habit_id", habitID).
		Int64("tracking_id", tracking.ID).
		Int("streak", tracking.Streak).
		Msg("completion logged")

	utils.WriteJSON(w, tracking, http.StatusCreated)
}

func (h *Handler) habitHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	habitID, ok := urlParamInt64(w, r, "habitID")
	if !ok {
		return
	}

	query := r.URL.Query()

	limit := service.DefaultHistoryLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Warn().Str("limit", raw).Msg("invalid limit query parameter")
			writeBadRequest(w, "invalid limit")
			return
		}
		limit = parsed
	}

	from, ok := timeQueryParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := timeQueryParam(w, r, "to")
	if !ok {
		return
	}

	history, err := h.services.TrackingService.GetHistory(ctx, userID, habitID, limit, from, to)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("history lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, history, http.StatusOK)
}

func (h *Handler) habitStreak(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	habitID, ok := urlParamInt64(w, r, "habitID")
	if !ok {
		return
	}

	streak, err := h.services.TrackingService.GetStreak(ctx, userID, habitID)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("streak lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]int{"streak": streak}, http.StatusOK)
}

func (h *Handler) deleteTracking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	trackingID, ok := urlParamInt64(w, r, "trackingID")
	if !ok {
		return
	}

	if err := h.services.TrackingService.Delete(ctx, userID, trackingID); err != nil {
		log.Err(err).Int64("tracking_id", trackingID).Msg("tracking deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// timeQueryParam parses an optional RFC 3339 query parameter, writing a 400
// response when the value is present but malformed.
func timeQueryParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		logger.FromRequest(r).Warn().Str(name, raw).Msg("invalid time query parameter")
		writeBadRequest(w, "invalid "+name)
		return nil, false
	}

	return &parsed, true
}
