package navigation

import (
	"log/slog"
	"net/http"

	"github.com/icyminglun/routescope/pkg/handlers"
	"github.com/icyminglun/routescope/pkg/pagination"
	"github.com/icyminglun/routescope/pkg/registry"
	"github.com/icyminglun/routescope/pkg/routes"
)

// Handler exposes application-scope route management over HTTP.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger,
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/routes",
		Description: "Application-scope route registry",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Set},
			{Method: "POST", Pattern: "/metadata", Handler: h.SetMetadata},
			{Method: "DELETE", Pattern: "", Handler: h.Remove},
			{Method: "GET", Pattern: "/resolve", Handler: h.Resolve},
			{Method: "GET", Pattern: "/url", Handler: h.URL},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromQuery(r.URL.Query(), h.pagination)
	handlers.RespondJSON(w, http.StatusOK, h.sys.List(page))
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[SetCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Set(r.Context(), cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) SetMetadata(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[SetMetadataRequest](r)
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
	if err := h.sys.SetMetadata(r.Context(), meta); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Remove dispatches the three removal forms based on query parameters:
// path only unbinds one path, view only unbinds all of a view's paths, and
// both together unbind the path only when it belongs to the view.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	view := r.URL.Query().Get("view")

	var err error
	switch {
	case path != "" && view != "":
		err = h.sys.RemovePath(r.Context(), path, view)
	case path != "":
		err = h.sys.Remove(r.Context(), path)
	case view != "":
		err = h.sys.RemoveTarget(r.Context(), view)
	default:
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingPath)
		return
	}
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	match, err := h.sys.Resolve(r.URL.Query().Get("path"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, match)
}

func (h *Handler) URL(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingView)
		return
	}

	url, err := h.sys.URL(view)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"url": url})
}
