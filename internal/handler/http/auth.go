package http

import (
	"encoding/json"
	"net/http"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeBadRequest(w, "invalid JSON was passed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("register request failed validation")
		writeBadRequest(w, "invalid data provided")
		return
	}

	user, tokens, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("user_id", user.ID).Msg("user registered")

	utils.WriteJSON(w, models.AuthResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeBadRequest(w, "invalid JSON was passed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("login request failed validation")
		writeBadRequest(w, "invalid data provided")
		return
	}

	user, tokens, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		log.Err(err).Msg("login failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("user_id", user.ID).Msg("user logged in")

	utils.WriteJSON(w, models.AuthResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeBadRequest(w, "invalid JSON was passed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("refresh request failed validation")
		writeBadRequest(w, "invalid data provided")
		return
	}

	tokens, err := h.services.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh token rotation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, tokens, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeBadRequest(w, "invalid JSON was passed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("logout request failed validation")
		writeBadRequest(w, "invalid data provided")
		return
	}

	if err := h.services.AuthService.Logout(ctx, req.RefreshToken); err != nil {
		log.Err(err).Msg("logout failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logoutAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.AuthService.LogoutAll(ctx, userID); err != nil {
		log.Err(err).Msg("logout-all failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, http.StatusBadRequest)
}
