package http

import (
	"net/http"

	"github.com/dmarkin/habitrack/internal/logger"
)

// ping reports service health. With a database attached it verifies
// connectivity; without one it only confirms the process is serving.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			log.Err(err).Msg("database ping failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}
