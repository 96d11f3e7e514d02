package router

import (
	"fmt"
	"strings"
)

// segment is one compiled element of a path pattern: either a literal that
// must match exactly, or a named parameter that binds a single non-empty
// path segment.
type segment struct {
	value     string
	isParam   bool
	paramName string
}

// PathPattern is a compiled route pattern. Patterns are compiled once at
// cold start and matched read-only afterwards.
//
// Parameter segments are written ":name" or "{name}". A parameter matches
// exactly one non-empty segment; there are no wildcards and no segment may
// span a "/". Trailing slashes are ignored on both pattern and path.
type PathPattern struct {
	raw      string
	segments []segment
}

// CompilePattern compiles a route pattern. It fails when the pattern is
// empty, does not start with "/", or declares the same parameter name twice.
func CompilePattern(pattern string) (*PathPattern, error) {
	if pattern == "" {
		return nil, fmt.Errorf("route pattern must not be empty")
	}
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("route pattern %q must start with /", pattern)
	}

	parts := splitPath(pattern)
	segments := make([]segment, 0, len(parts))
	seen := make(map[string]bool)

	for _, part := range parts {
		name, isParam := paramName(part)
		if !isParam {
			segments = append(segments, segment{value: part})
			continue
		}

		if name == "" {
			return nil, fmt.Errorf("route pattern %q has an unnamed parameter", pattern)
		}
		if seen[name] {
			return nil, fmt.Errorf("route pattern %q declares parameter %q twice", pattern, name)
		}
		seen[name] = true

		segments = append(segments, segment{value: part, isParam: true, paramName: name})
	}

	return &PathPattern{raw: pattern, segments: segments}, nil
}

// MustCompilePattern is CompilePattern that panics on error, for use in
// tests and static route tables.
func MustCompilePattern(pattern string) *PathPattern {
	p, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// paramName reports whether a pattern part is a parameter segment and
// returns its name. Both ":name" and "{name}" forms are accepted.
func paramName(part string) (string, bool) {
	if strings.HasPrefix(part, ":") {
		return part[1:], true
	}
	if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
		return part[1 : len(part)-1], true
	}
	return "", false
}

// splitPath splits a pattern or path on "/", discarding the empty leading
// segment and normalizing trailing slashes away.
func splitPath(s string) []string {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

// Raw returns the pattern string as registered.
func (p *PathPattern) Raw() string {
	return p.raw
}

// Match walks the concrete path against the compiled pattern. It returns the
// bound parameters and true on a match. Segment counts must agree, literals
// compare case-sensitively, and a parameter never matches an empty segment.
func (p *PathPattern) Match(path string) (map[string]string, bool) {
	parts := splitPath(path)
	if len(parts) != len(p.segments) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range p.segments {
		if seg.isParam {
			if parts[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[seg.paramName] = parts[i]
			continue
		}
		if parts[i] != seg.value {
			return nil, false
		}
	}

	if params == nil {
		params = make(map[string]string)
	}
	return params, true
}
