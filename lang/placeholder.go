package lang

import (
	"regexp"
	"strings"

	"github.com/ardnew/slab/scope"
)

const (
	markerOpen  = "!{"
	markerClose = "}!"
)

// placeholderPattern matches !{a.b.c}! where each segment is a run of
// letters, digits, '_' or '-'.
var placeholderPattern = regexp.MustCompile(`!\{([\w-]+(?:\.[\w-]+)*)\}!`)

// Placeholders returns the paths of all placeholders in s, in order.
func Placeholders(s string) []string {
	if !strings.Contains(s, markerOpen) {
		return nil
	}

	matches := placeholderPattern.FindAllStringSubmatch(s, -1)
	paths := make([]string, len(matches))

	for i, m := range matches {
		paths[i] = m[1]
	}

	return paths
}

// Resolve replaces every placeholder in s whose path resolves to a scalar
// in env. Other placeholders are kept as written.
func Resolve(s string, env *scope.Env) string {
	resolved, _ := resolve(s, env)

	return resolved
}

// resolve is [Resolve] that also returns the paths it could not resolve.
func resolve(s string, env *scope.Env) (string, []string) {
	if !strings.Contains(s, markerOpen) {
		return s, nil
	}

	var missed []string

	out := placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		path := m[len(markerOpen) : len(m)-len(markerClose)]

		if v, ok := env.Lookup(path); ok {
			if text, ok := v.Text(); ok {
				return text
			}
		}

		missed = append(missed, path)

		return m
	})

	return out, missed
}

// stripMarker returns the path inside a single !{...}! marker, or s
// trimmed when it is not wrapped in one.
func stripMarker(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, markerOpen) && strings.HasSuffix(s, markerClose) &&
		len(s) >= len(markerOpen)+len(markerClose) {
		return strings.TrimSpace(s[len(markerOpen) : len(s)-len(markerClose)])
	}

	return s
}
