package synth

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
)

// Registry is the per-file identifier state: the structural fingerprint
// cache, the set of issued identifiers and the per-candidate collision
// counters. A Registry must not be shared between files.
type Registry struct {
	cache    map[string]string
	issued   map[string]bool
	counters map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[string]string),
		issued:   make(map[string]bool),
		counters: make(map[string]int),
	}
}

// Reserve marks id as taken, typically for identifiers already in the source.
func (r *Registry) Reserve(id string) {
	if id != "" {
		r.issued[id] = true
	}
}

// Issued reports whether id was reserved or handed out.
func (r *Registry) Issued(id string) bool {
	return r.issued[id]
}

// Len returns the number of issued identifiers.
func (r *Registry) Len() int {
	return len(r.issued)
}

// unique returns candidate unchanged on first use and otherwise appends the
// next free counter, starting at 2.
func (r *Registry) unique(candidate string) string {
	if !r.issued[candidate] {
		r.issued[candidate] = true

		return candidate
	}

	n := max(r.counters[candidate], 1)

	for {
		n++

		next := candidate + "-" + strconv.Itoa(n)
		if !r.issued[next] {
			r.counters[candidate] = n
			r.issued[next] = true

			return next
		}
	}
}

func (r *Registry) cached(fingerprint string) (string, bool) {
	id, ok := r.cache[fingerprint]

	return id, ok
}

func (r *Registry) remember(fingerprint, id string) {
	if _, ok := r.cache[fingerprint]; !ok {
		r.cache[fingerprint] = id
	}
}

// Fingerprint is the structural identity of an element: its name, its sorted
// attribute names and its parent's name.
func Fingerprint(el *jsx.Element, parentName string) string {
	names := el.AttrNames()
	slices.Sort(names)

	return el.Name + "|" + strings.Join(names, ",") + "|" + parentName
}
