// Package urlstate maps typed parameter sets to and from a URL query
// representation. The URL carries only the diff against a default set:
// reading overlays URL-present keys onto defaults, writing removes keys
// whose value returned to its default, keeping addresses minimal and
// shareable while round-tripping the logical state losslessly.
package urlstate

import (
	"fmt"
	"net/url"
	"strconv"
	"sync"
)

// Read overlays URL-present keys onto defaults. Keys absent from
// defaults are ignored. When a default is an int, the URL value is
// coerced; unparseable numbers silently fall back to the default.
func Read(query url.Values, defaults map[string]any) map[string]any {
	result := make(map[string]any, len(defaults))
	for key, def := range defaults {
		result[key] = def

		if !query.Has(key) {
			continue
		}
		raw := query.Get(key)

		switch def.(type) {
		case int:
			if n, err := strconv.Atoi(raw); err == nil {
				result[key] = n
			}
		default:
			result[key] = raw
		}
	}
	return result
}

// Write merges patch into query. A patched value that is nil, empty, or
// equal to its default removes the key; any other value sets it. Keys
// outside the patch are untouched, so concurrent patches to disjoint
// keys merge.
func Write(query url.Values, defaults map[string]any, patch map[string]any) url.Values {
	next := url.Values{}
	for key, values := range query {
		next[key] = append([]string(nil), values...)
	}

	for key, value := range patch {
		if value == nil || encode(value) == "" || encode(value) == encode(defaults[key]) {
			next.Del(key)
			continue
		}
		next.Set(key, encode(value))
	}
	return next
}

func encode(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

// Store binds a default parameter set to a URL, behaving like a
// browser address bar: reads reconstruct state from the current
// query, writes replace it in place. Last writer wins per key.
type Store struct {
	mu       sync.Mutex
	u        *url.URL
	defaults map[string]any
	onChange func(*url.URL)
}

// NewStore creates a Store over u. onChange, when non-nil, is invoked
// after every write that altered the query (replace, not push).
func NewStore(u *url.URL, defaults map[string]any, onChange func(*url.URL)) *Store {
	return &Store{
		u:        u,
		defaults: defaults,
		onChange: onChange,
	}
}

// Read returns the current logical parameter state.
func (s *Store) Read() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Read(s.u.Query(), s.defaults)
}

// Write merges patch into the stored URL. Writing an identical state is
// a no-op, so repeated writes are idempotent.
func (s *Store) Write(patch map[string]any) {
	s.mu.Lock()

	current := s.u.Query()
	next := Write(current, s.defaults, patch)

	encoded := next.Encode()
	if encoded == current.Encode() {
		s.mu.Unlock()
		return
	}

	s.u.RawQuery = encoded
	onChange := s.onChange
	u := *s.u
	s.mu.Unlock()

	if onChange != nil {
		onChange(&u)
	}
}

// URL returns a copy of the current URL.
func (s *Store) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *s.u
	return &u
}
