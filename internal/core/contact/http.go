// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/aanchalalytcs/showcase/internal/platform/request"
	"github.com/aanchalalytcs/showcase/internal/platform/respond"
)

// Handler accepts contact form submissions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the contact endpoint on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.sendIdea)
}

func (handler *Handler) sendIdea(writer http.ResponseWriter, request *http.Request) {
	var idea Idea
	if err := requestutil.DecodeJSON(writer, request, &idea); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Send(request.Context(), idea); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Accepted(writer, map[string]string{"message": SuccessMessage})
}
