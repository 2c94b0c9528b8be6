package sqlexec

import "regexp"

// ContextMap maps substitution keys to the values spliced into SQL text.
// A ContextMap is built fresh per invocation and must not be mutated after
// it is handed to an Executor.
type ContextMap map[string]string

// Merge returns a fresh map holding base overlaid with overlay; overlay
// entries win on key collision. Neither input is mutated.
func Merge(base, overlay ContextMap) ContextMap {
	merged := make(ContextMap, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Substitute replaces every {identifier} token in s with the mapped value.
// Tokens whose key is absent, or mapped to the empty string, are left
// verbatim so a broken fixture shows the unresolved marker instead of a
// silently blanked-out value.
func (m ContextMap) Substitute(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(token string) string {
		if v := m[token[1:len(token)-1]]; v != "" {
			return v
		}
		return token
	})
}
