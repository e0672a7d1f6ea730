package cache

import (
	"net/url"
	"strings"
)

// Key builds a canonical fingerprint from a route and its parameters.
// Parameter order does not matter; every parameter and value is part of the key.
func Key(route string, params url.Values) string {
	if len(params) == 0 {
		return route
	}
	var b strings.Builder
	b.WriteString(route)
	b.WriteByte('?')
	b.WriteString(params.Encode()) // Encode sorts by key
	return b.String()
}
