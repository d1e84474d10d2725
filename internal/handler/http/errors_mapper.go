package http

import (
	"errors"
	"net/http"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/service"
	"github.com/dmarkin/habitrack/internal/store"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
)

// statusFromError maps the service/store error taxonomy onto HTTP status
// codes with user-safe messages. Raw storage errors never reach this point;
// repositories translate them into sentinels first. Anything unrecognised
// is a 500 with a generic message.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		return http.StatusBadRequest, "invalid data provided"

	case errors.Is(err, store.ErrDuplicateTracking):
		return http.StatusBadRequest, "habit already tracked for this day"

	case errors.Is(err, store.ErrEmailAlreadyExists):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, store.ErrHabitNameTaken):
		return http.StatusConflict, "habit name already taken"
	case errors.Is(err, store.ErrDuplicateGoal):
		return http.StatusConflict, "goal of this type already exists"

	case errors.Is(err, store.ErrHabitNotFound):
		return http.StatusNotFound, "habit not found"
	case errors.Is(err, store.ErrGoalNotFound):
		return http.StatusNotFound, "goal not found"
	case errors.Is(err, store.ErrTrackingNotFound):
		return http.StatusNotFound, "tracking record not found"

	// Auth failures are deliberately uniform: root cause is not exposed.
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return http.StatusUnauthorized, "unauthorized"

	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

// writeError maps err onto the taxonomy and writes the JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	status, message := statusFromError(err)
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}

// userIDFromRequest pulls the authenticated user's ID from the request
// context. The auth middleware guarantees it is present on guarded routes;
// a miss means the route was wired outside the auth group and is rejected.
func userIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("authenticated route reached without user identity")
		utils.WriteJSON(w, models.ErrorResponse{Error: "unauthorized"}, http.StatusUnauthorized)
	}
	return userID, ok
}
