// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

// HTTP transport for the candidate listing.
package candidate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/votra-app/votra/internal/platform/respond"
	"github.com/votra-app/votra/pkg/pagination"
)

// Handler exposes the candidate listing over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the candidate HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the candidate endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	return router
}

// list handles GET /candidates.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
