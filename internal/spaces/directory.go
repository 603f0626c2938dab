// Package spaces resolves "BUILDING ROOM" display names to the opaque space
// identifiers the upstream reservation service understands.
package spaces

import "strings"

// Directory is an immutable in-memory name-to-identifier table. Lookups are
// case-insensitive and exact-match only; no fuzzy matching.
type Directory struct {
	byName map[string]string
}

// NewDirectory builds a directory from display-name → space-id entries. Names
// are normalized to uppercase with surrounding whitespace removed.
func NewDirectory(entries map[string]string) *Directory {
	byName := make(map[string]string, len(entries))
	for name, id := range entries {
		byName[normalizeName(name)] = id
	}
	return &Directory{byName: byName}
}

// Resolve looks up the space identifier for a "BUILDING ROOM" query string.
// The second return reports whether the room is known.
func (d *Directory) Resolve(roomQuery string) (string, bool) {
	if d == nil {
		return "", false
	}
	id, ok := d.byName[normalizeName(roomQuery)]
	return id, ok
}

// Len reports the number of known spaces.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byName)
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
