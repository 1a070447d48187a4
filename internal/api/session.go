// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aanchalalytcs/showcase/internal/core/lead"
	"github.com/aanchalalytcs/showcase/internal/core/mutation"
	"github.com/aanchalalytcs/showcase/internal/core/project"
	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
	"github.com/aanchalalytcs/showcase/internal/platform/constants"
	"github.com/aanchalalytcs/showcase/internal/platform/ctxutil"
	"github.com/aanchalalytcs/showcase/internal/platform/respond"
	"github.com/aanchalalytcs/showcase/internal/platform/session"
)

// # Session Workspaces

// Workspace is everything one browser session owns: both dataset workspaces
// and the inbox their mutation outcomes are delivered to.
type Workspace struct {
	Projects *project.Workspace
	Leads    *lead.Workspace
	Inbox    *mutation.Inbox
}

var errNoSession = errors.New("api: request is not bound to a session")

// Sessions binds browser sessions to their [Workspace].
type Sessions struct {
	manager *session.Manager[*Workspace]
}

// NewSessions builds session workspaces from the two domain services.
// Storage for both datasets shares the session's scoped backend; the cache
// keys are distinct per dataset.
func NewSessions(cfg session.ManagerConfig[*Workspace], projects *project.Service, leads *lead.Service) *Sessions {
	cfg.Build = func(sessionID string, storage session.Scoped) *Workspace {
		inbox := mutation.NewInbox(constants.InboxCapacity)
		return &Workspace{
			Projects: projects.NewWorkspace(sessionID, storage, inbox),
			Leads:    leads.NewWorkspace(sessionID, storage, inbox),
			Inbox:    inbox,
		}
	}
	cfg.Release = func(workspace *Workspace) {
		workspace.Projects.Detach()
		workspace.Leads.Detach()
	}
	return &Sessions{manager: session.NewManager(cfg)}
}

// Acquire satisfies [middleware.SessionAcquirer].
func (sessions *Sessions) Acquire(id string) (string, bool) {
	_, sessionID, created := sessions.manager.Acquire(id)
	return sessionID, created
}

// Workspace returns the workspace of the session bound to the request.
func (sessions *Sessions) Workspace(request *http.Request) (*Workspace, error) {
	sessionID := ctxutil.GetSessionID(request.Context())
	if sessionID == "" {
		return nil, apperr.Internal(errNoSession)
	}
	workspace, _, _ := sessions.manager.Acquire(sessionID)
	return workspace, nil
}

// Projects resolves the project workspace of the request's session.
func (sessions *Sessions) Projects(request *http.Request) (*project.Workspace, error) {
	workspace, err := sessions.Workspace(request)
	if err != nil {
		return nil, err
	}
	return workspace.Projects, nil
}

// Leads resolves the lead workspace of the request's session.
func (sessions *Sessions) Leads(request *http.Request) (*lead.Workspace, error) {
	workspace, err := sessions.Workspace(request)
	if err != nil {
		return nil, err
	}
	return workspace.Leads, nil
}

// Len reports the number of live sessions.
func (sessions *Sessions) Len() int {
	return sessions.manager.Len()
}

// Janitor expires idle sessions until ctx is cancelled.
func (sessions *Sessions) Janitor(ctx context.Context) {
	sessions.manager.Janitor(ctx, constants.SessionSweepInterval)
}

// Shutdown ends every live session.
func (sessions *Sessions) Shutdown(ctx context.Context) {
	sessions.manager.Shutdown(ctx)
}

// # HTTP

// RegisterRoutes mounts the notification and session-end endpoints on router.
func (sessions *Sessions) RegisterRoutes(router chi.Router) {
	router.Get("/notifications", sessions.drainNotifications)
	router.Delete("/session", sessions.endSession)
}

func (sessions *Sessions) drainNotifications(writer http.ResponseWriter, request *http.Request) {
	workspace, err := sessions.Workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, workspace.Inbox.Drain())
}

func (sessions *Sessions) endSession(writer http.ResponseWriter, request *http.Request) {
	sessionID := ctxutil.GetSessionID(request.Context())
	if err := sessions.manager.End(request.Context(), sessionID); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respond.NoContent(writer)
}
