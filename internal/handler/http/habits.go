package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
)

func (h *Handler) createHabit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeBadRequest(w, "invalid JSON was passed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("create habit request failed validation")
		writeBadRequest(w, "invalid data provided")
		return
	}

	habit, err := h.services.HabitService.Create(ctx, userID, req)
	if err != nil {
		log.Err(err).Msg("habit creation failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("habit_id", habit.ID).Msg("habit created")

	utils.WriteJSON(w, habit, http.StatusCreated)
}

func (h *Handler) listHabits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var isActive *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Err(err).Str("active", raw).Msg("invalid active filter")
			writeBadRequest(w, "invalid active filter")
			return
		}
		isActive = &parsed
	}

	habits, err := h.services.HabitService.FindAll(ctx, userID, isActive)
	if err != nil {
		log.Err(err).Msg("habit listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, habits, http.StatusOK)
}

func (h *Handler) getHabit(w http.ResponseWriter, r *http.Request) {
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

	habit, err := h.services.HabitService.FindByID(ctx, userID, habitID)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("habit lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, habit, http.StatusOK)
}

func (h *Handler) updateHabit(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeBadRequest(w, "invalid JSON was passed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("update habit request failed validation")
		writeBadRequest(w, "invalid data provided")
		return
	}

	habit, err := h.services.HabitService.Update(ctx, userID, habitID, req)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("habit update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, habit, http.StatusOK)
}

func (h *Handler) deleteHabit(w http.ResponseWriter, r *http.Request) {
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

	if err := h.services.HabitService.Delete(ctx, userID, habitID); err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("habit deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// urlParamInt64 parses a chi URL parameter as a positive int64, writing a
// 400 response on failure.
func urlParamInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		logger.FromRequest(r).Warn().Str(name, raw).Msg("invalid path parameter")
		writeBadRequest(w, "invalid "+name)
		return 0, false
	}

	return value, true
}
