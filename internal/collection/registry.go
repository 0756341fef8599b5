package collection

import (
	"fmt"
	"regexp"
	"sync"
)

var slugRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Registry holds every registered collection, keyed by slug. Registration
// happens once at boot; lookups are concurrent.
type Registry struct {
	mu     sync.RWMutex
	bySlug map[string]*Collection
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{bySlug: map[string]*Collection{}}
}

func (r *Registry) Register(c *Collection) error {
	if !slugRe.MatchString(c.Slug) {
		return fmt.Errorf("collection slug %q is invalid", c.Slug)
	}
	seen := map[string]bool{}
	for _, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("collection %q has a field with no name", c.Slug)
		}
		if seen[f.Name] {
			return fmt.Errorf("collection %q declares field %q twice", c.Slug, f.Name)
		}
		seen[f.Name] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySlug[c.Slug]; ok {
		return fmt.Errorf("collection %q already registered", c.Slug)
	}
	r.bySlug[c.Slug] = c
	r.order = append(r.order, c.Slug)
	return nil
}

func (r *Registry) Get(slug string) (*Collection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.bySlug[slug]
	return c, ok
}

// All returns collections in registration order.
func (r *Registry) All() []*Collection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Collection, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.bySlug[slug])
	}
	return out
}
