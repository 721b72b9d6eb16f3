package cache

import (
	"sort"
	"strings"
)

// Key derives a deterministic cache key from a logical endpoint and its
// query parameters. Parameters are sorted by name so that the same
// parameter set always maps to the same key regardless of insertion
// order.
func Key(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteByte('?')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}

// CityKey addresses a normalized per-city schedule list.
func CityKey(city string) string {
	return Key("schedules", map[string]string{"city": strings.ToLower(strings.TrimSpace(city))})
}
