package registry

// Scoped layers a session-scope registry over the application-scope
// registry. Reads check the session scope first and fall back to the
// application scope; a session entry sharing a path with an application
// entry masks it without modifying it. Mutations through Session never touch
// the application registry, so removing a session entry simply stops the
// masking.
type Scoped struct {
	session *Registry
	app     *Registry
}

// NewScoped creates a layered view of session over app.
func NewScoped(session, app *Registry) *Scoped {
	return &Scoped{session: session, app: app}
}

// Session returns the session-scope registry for mutation.
func (s *Scoped) Session() *Registry {
	return s.session
}

// Resolve looks up path in the session scope, falling back to the
// application scope on a miss. Only lookup misses fall through; any other
// error from the session scope is returned as-is.
func (s *Scoped) Resolve(path string) (*Match, error) {
	match, err := s.session.Resolve(path)
	if err == nil {
		return match, nil
	}
	if _, miss := err.(*NotFoundError); !miss {
		return nil, err
	}
	return s.app.Resolve(path)
}

// URL returns the main path for view from the session scope, falling back
// to the application scope when the session has no entry for the view.
func (s *Scoped) URL(view string) (string, error) {
	url, err := s.session.URL(view)
	if err == nil {
		return url, nil
	}
	if _, miss := err.(*NotFoundError); !miss {
		return "", err
	}
	return s.app.URL(view)
}
