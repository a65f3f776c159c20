package registry

import "strings"

// segment is one slash-delimited element of a path pattern. A segment is
// either a literal or a named parameter placeholder, never both.
type segment struct {
	literal string
	param   string
}

func (s segment) isParam() bool {
	return s.param != ""
}

// pattern is a parsed, normalized path pattern. raw is the canonical string
// form: segments joined with "/", no leading or trailing slash. The empty
// string is the root path.
type pattern struct {
	raw      string
	segments []segment
}

// parsePattern normalizes and validates a path string. Leading and trailing
// slashes are stripped. Parameter segments use the {name} form and must span
// the whole segment.
func parsePattern(path string) (*pattern, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return &pattern{raw: ""}, nil
	}

	parts := strings.Split(trimmed, "/")
	segments := make([]segment, 0, len(parts))
	canonical := make([]string, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			return nil, &InvalidPathError{Path: path, Reason: "empty segment"}
		}

		if strings.HasPrefix(part, "{") || strings.HasSuffix(part, "}") {
			if !strings.HasPrefix(part, "{") || !strings.HasSuffix(part, "}") {
				return nil, &InvalidPathError{Path: path, Reason: "unbalanced parameter braces"}
			}
			name := part[1 : len(part)-1]
			if name == "" {
				return nil, &InvalidPathError{Path: path, Reason: "empty parameter name"}
			}
			if strings.ContainsAny(name, "{}") {
				return nil, &InvalidPathError{Path: path, Reason: "nested parameter braces"}
			}
			segments = append(segments, segment{param: name})
			canonical = append(canonical, "{"+name+"}")
			continue
		}

		if strings.ContainsAny(part, "{}") {
			return nil, &InvalidPathError{Path: path, Reason: "unbalanced parameter braces"}
		}
		segments = append(segments, segment{literal: part})
		canonical = append(canonical, part)
	}

	return &pattern{
		raw:      strings.Join(canonical, "/"),
		segments: segments,
	}, nil
}

// Normalize returns the canonical form of a path pattern: segments joined
// with "/", no surrounding slashes, the empty string for the root path.
// Callers keying external storage by pattern should normalize first so their
// keys line up with the registry's.
func Normalize(path string) (string, error) {
	pat, err := parsePattern(path)
	if err != nil {
		return "", err
	}
	return pat.raw, nil
}

// splitPath splits a concrete request path into segments using the same
// normalization as parsePattern. The root path yields a nil slice.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// match tests the pattern against concrete path segments, returning extracted
// parameter values when it matches. Literal segments must match exactly;
// parameter segments capture any single segment.
func (p *pattern) match(parts []string) (map[string]string, bool) {
	if len(parts) != len(p.segments) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range p.segments {
		if seg.isParam() {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg.param] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return nil, false
		}
	}
	return params, true
}

// moreSpecific reports whether p ranks above other for the same concrete
// path. Walking segments left to right, the first position where one side is
// literal and the other a parameter decides: the literal side wins. Patterns
// with identical shape are equally specific.
func (p *pattern) moreSpecific(other *pattern) bool {
	for i := range p.segments {
		if i >= len(other.segments) {
			break
		}
		a, b := p.segments[i].isParam(), other.segments[i].isParam()
		if a != b {
			return !a
		}
	}
	return false
}
