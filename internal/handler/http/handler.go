// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer.
package http

import (
	"context"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/service"
	"github.com/go-playground/validator/v10"
)

// Pinger reports storage connectivity for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler carries the service layer and per-handler utilities. One Handler
// serves all routes; it is safe for concurrent use.
type Handler struct {
	services *service.Services
	db       Pinger
	validate *validator.Validate
	logger   *logger.Logger
}

// NewHandler constructs the HTTP handler over the given services. db may be
// nil, in which case the health endpoint reports liveness only.
func NewHandler(services *service.Services, db Pinger, logger *logger.Logger) *Handler {
	return &Handler{
		services: services,
		db:       db,
		validate: validator.New(),
		logger:   logger,
	}
}
