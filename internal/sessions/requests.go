package sessions

import "errors"

var errMissingRemovalSelector = errors.New("path or view query parameter required")

type setRouteRequest struct {
	Path    string   `json:"path"`
	View    string   `json:"view"`
	Layouts []string `json:"layouts,omitempty"`
}

type setMetadataRequest struct {
	Path    string   `json:"path"`
	View    string   `json:"view"`
	Layouts []string `json:"layouts,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}
