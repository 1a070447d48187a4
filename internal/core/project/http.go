// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aanchalalytcs/showcase/internal/core/query"
	requestutil "github.com/aanchalalytcs/showcase/internal/platform/request"
	"github.com/aanchalalytcs/showcase/internal/platform/respond"
	"github.com/aanchalalytcs/showcase/pkg/pointer"
)

// WorkspaceFunc resolves the project workspace of the request's session.
type WorkspaceFunc func(request *http.Request) (*Workspace, error)

// # HTTP Handler

// Handler exposes the project dataset over HTTP.
type Handler struct {
	service   *Service
	workspace WorkspaceFunc
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, workspace WorkspaceFunc) *Handler {
	return &Handler{service: service, workspace: workspace}
}

// RegisterRoutes mounts the project endpoints on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listProjects)
	router.Post("/", handler.submitProject)
	router.Get("/vocabulary", handler.getVocabulary)
	router.Get("/stats", handler.getStats)
	router.Get("/export", handler.exportProjects)
	router.Get("/selection", handler.getSelection)
	router.Post("/selection/{id}", handler.toggleSelection)
	router.Post("/bulk-delete", handler.bulkDelete)
	router.Delete("/{id}", handler.deleteProject)
}

// # Listing

func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace.View.Apply(ViewChanges(request))
	limit, _ := requestutil.QueryInt(request, "limit")

	listing, err := handler.service.List(request.Context(), workspace, requestutil.QueryBool(request, "refresh"), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.PaginatedWith(writer, listing.Page.Items, listing.Page.Meta(), listing)
}

/*
ViewChanges reads the gallery query parameters into view state changes.

Only parameters present on the request are applied; "?category=" is present
and clears the category.
*/
func ViewChanges(request *http.Request) query.Changes {
	var changes query.Changes
	if value, ok := requestutil.Query(request, "category"); ok {
		changes.Category = pointer.To(value)
	}
	if value, ok := requestutil.Query(request, "subcategory"); ok {
		changes.Subcategory = pointer.To(value)
	}
	if value, ok := requestutil.Query(request, "q"); ok {
		changes.Search = pointer.To(value)
	}
	if page, ok := requestutil.QueryInt(request, "page"); ok {
		changes.Page = pointer.To(page)
	}
	return changes
}

func (handler *Handler) getVocabulary(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	vocabulary, err := handler.service.Vocabulary(request.Context(), workspace)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, vocabulary)
}

func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Stats(request.Context(), workspace)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

func (handler *Handler) exportProjects(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Export(request.Context(), workspace)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if report.ArchiveKey != "" {
		writer.Header().Set("X-Report-Archive-Key", report.ArchiveKey)
	}
	respond.Attachment(writer, reportContentType, report.Filename, report.Body)
}

// # Submission

func (handler *Handler) submitProject(writer http.ResponseWriter, request *http.Request) {
	var submission Submission
	if err := requestutil.DecodeJSON(writer, request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := handler.service.Submit(request.Context(), workspace, submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]string{"id": id})
}

// # Moderation

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type selectionResponse struct {
	Selected []string `json:"selected"`
}

func (handler *Handler) deleteProject(writer http.ResponseWriter, request *http.Request) {
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

func (handler *Handler) bulkDelete(writer http.ResponseWriter, request *http.Request) {
	var body bulkDeleteRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	removed, err := handler.service.BulkDelete(request.Context(), workspace, body.IDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]string{"removed": removed})
}

func (handler *Handler) toggleSelection(writer http.ResponseWriter, request *http.Request) {
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

	handler.service.ToggleSelection(workspace, id)
	respond.OK(writer, selectionResponse{Selected: workspace.Coordinator.Selected()})
}

func (handler *Handler) getSelection(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, selectionResponse{Selected: workspace.Coordinator.Selected()})
}
