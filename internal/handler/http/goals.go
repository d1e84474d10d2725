package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
)

func (h *Handler) createGoal(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeBadRequest(w, "invalid JSON was passed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("create goal request failed validation")
		writeBadRequest(w, "invalid data provided")
		return
	}

	goal, err := h.services.GoalService.Create(ctx, userID, habitID, req)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("goal creation failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("goal_id", goal.ID).Msg("goal created")

	utils.WriteJSON(w, goal, http.StatusCreated)
}

func (h *Handler) listGoals(w http.ResponseWriter, r *http.Request) {
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

	goals, err := h.services.GoalService.FindByHabit(ctx, userID, habitID)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("goal listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, goals, http.StatusOK)
}

func (h *Handler) updateGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	goalID, ok := urlParamInt64(w, r, "goalID")
	if !ok {
		return
	}

	var req models.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeBadRequest(w, "invalid JSON was passed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("update goal request failed validation")
		writeBadRequest(w, "invalid data provided")
		return
	}

	goal, err := h.services.GoalService.Update(ctx, userID, goalID, req)
	if err != nil {
		log.Err(err).Int64("goal_id", goalID).Msg("goal update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, goal, http.StatusOK)
}

func (h *Handler) deleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	goalID, ok := urlParamInt64(w, r, "goalID")
	if !ok {
		return
	}

	if err := h.services.GoalService.Delete(ctx, userID, goalID); err != nil {
		log.Err(err).Int64("goal_id", goalID).Msg("goal deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) goalProgress(w http.ResponseWriter, r *http.Request) {
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

	goalType := models.GoalType(chi.URLParam(r, "goalType"))
	if !goalType.Valid() {
		log.Warn().Str("goal_type", string(goalType)).Msg("invalid goal type")
		writeBadRequest(w, "invalid goal type")
		return
	}

	progress, err := h.services.GoalService.GetProgress(ctx, userID, habitID, goalType)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("goal progress evaluation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, progress, http.StatusOK)
}
