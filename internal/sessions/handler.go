package sessions

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/icyminglun/routescope/pkg/handlers"
	"github.com/icyminglun/routescope/pkg/registry"
	"github.com/icyminglun/routescope/pkg/routes"
)

// Handler exposes session lifecycle and session-scope route operations.
// Lookups go through a Scoped view so session entries mask the shared
// application registry.
type Handler struct {
	manager *Manager
	app     *registry.Registry
	logger  *slog.Logger
}

// NewHandler creates a session handler layered over the application-scope
// registry.
func NewHandler(manager *Manager, app *registry.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		manager: manager,
		app:     app,
		logger:  logger,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/sessions",
		Description: "Session lifecycle and session-scope route bindings",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Destroy},
			{Method: "GET", Pattern: "/{id}/routes", Handler: h.List},
			{Method: "POST", Pattern: "/{id}/routes", Handler: h.Set},
			{Method: "POST", Pattern: "/{id}/routes/metadata", Handler: h.SetMetadata},
			{Method: "DELETE", Pattern: "/{id}/routes", Handler: h.Remove},
			{Method: "GET", Pattern: "/{id}/resolve", Handler: h.Resolve},
			{Method: "GET", Pattern: "/{id}/url", Handler: h.URL},
		},
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id := h.manager.Create()
	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.manager.Destroy(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.session(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, reg.Bindings())
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.session(w, r)
	if !ok {
		return
	}

	req, err := handlers.DecodeJSON[setRouteRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := reg.Set(req.Path, req.View, req.Layouts...); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) SetMetadata(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.session(w, r)
	if !ok {
		return
	}

	req, err := handlers.DecodeJSON[setMetadataRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	meta := registry.Metadata{
		Path:    req.Path,
		View:    req.View,
		Layouts: req.Layouts,
		Aliases: req.Aliases,
	}
	if err := reg.SetMetadata(meta); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Remove dispatches the three removal forms based on query parameters:
// path only, view only, or both.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.session(w, r)
	if !ok {
		return
	}

	path := r.URL.Query().Get("path")
	view := r.URL.Query().Get("view")

	var err error
	switch {
	case path != "" && view != "":
		err = reg.RemovePath(path, view)
	case path != "":
		err = reg.Remove(path)
	case view != "":
		reg.RemoveTarget(view)
	default:
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errMissingRemovalSelector)
		return
	}
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.session(w, r)
	if !ok {
		return
	}

	scoped := registry.NewScoped(reg, h.app)
	match, err := scoped.Resolve(r.URL.Query().Get("path"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, match)
}

func (h *Handler) URL(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.session(w, r)
	if !ok {
		return
	}

	scoped := registry.NewScoped(reg, h.app)
	url, err := scoped.URL(r.URL.Query().Get("view"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// session resolves the {id} path value to a live session registry, writing
// the error response on failure.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*registry.Registry, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}

	reg, err := h.manager.Get(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}
	return reg, true
}
