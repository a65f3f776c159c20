package navigation

// SetMetadataRequest is the request body for annotated registration: the
// pre-parsed route metadata tuple supplied by an external metadata provider.
type SetMetadataRequest struct {
	Path    string   `json:"path"`
	View    string   `json:"view"`
	Layouts []string `json:"layouts,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}
