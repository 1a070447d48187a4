// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/aanchalalytcs/showcase/internal/platform/request"
	"github.com/aanchalalytcs/showcase/internal/platform/respond"
	"github.com/aanchalalytcs/showcase/pkg/pagination"
)

// Handler serves the moderation audit trail.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the audit listing on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listEntries)
}

func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request, pagination.DefaultLimit)

	var filter Filter
	filter.Dataset, _ = requestutil.Query(request, "dataset")
	filter.EntityID, _ = requestutil.Query(request, "entity_id")

	entries, meta, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, entries, meta)
}
