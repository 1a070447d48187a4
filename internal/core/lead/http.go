// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package lead

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aanchalalytcs/showcase/internal/core/query"
	requestutil "github.com/aanchalalytcs/showcase/internal/platform/request"
	"github.com/aanchalalytcs/showcase/internal/platform/respond"
	"github.com/aanchalalytcs/showcase/pkg/pointer"
)

// WorkspaceFunc resolves the lead workspace of the request's session.
type WorkspaceFunc func(request *http.Request) (*Workspace, error)

// Handler exposes the lead dataset over HTTP.
type Handler struct {
	service   *Service
	workspace WorkspaceFunc
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, workspace WorkspaceFunc) *Handler {
	return &Handler{service: service, workspace: workspace}
}

// RegisterRoutes mounts the lead endpoints on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listLeads)
	router.Delete("/{id}", handler.deleteLead)
	router.Patch("/{id}/status", handler.updateStatus)
	router.Get("/{id}/welcome", handler.getWelcome)
}

func (handler *Handler) listLeads(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Status first: changing it resets the page, an explicit page wins.
	if status, ok := requestutil.Query(request, "status"); ok {
		workspace.SetStatusFilter(status)
	}
	var changes query.Changes
	if search, ok := requestutil.Query(request, "q"); ok {
		changes.Search = pointer.To(search)
	}
	if page, ok := requestutil.QueryInt(request, "page"); ok {
		changes.Page = pointer.To(page)
	}
	workspace.View.Apply(changes)

	limit, _ := requestutil.QueryInt(request, "limit")
	listing, err := handler.service.List(request.Context(), workspace, requestutil.QueryBool(request, "refresh"), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.PaginatedWith(writer, listing.Page.Items, listing.Page.Meta(), listing)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body statusRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetStatus(request.Context(), workspace, id, body.Status); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteLead(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), workspace, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getWelcome(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	welcome, err := handler.service.Welcome(request.Context(), workspace, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, welcome)
}
