// Package capability defines the invocable business lookups and the
// registry the router selects from.
package capability

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldlens/concierge/domain"
)

// Capability is one named business lookup. Params returns a JSON schema
// object so capabilities can be advertised to the model as tools.
type Capability interface {
	Name() string
	Description() string
	Params() map[string]any
	Invoke(ctx context.Context, args map[string]any) (domain.Payload, error)
}

// Registry holds capabilities in registration order. Registration happens
// at startup only; lookups afterwards need no locking.
type Registry struct {
	order []string
	byKey map[string]Capability
}

func NewRegistry() *Registry {
	return &Registry{byKey: map[string]Capability{}}
}

// Register adds a capability. Duplicate names are a programming error.
func (r *Registry) Register(c Capability) error {
	name := c.Name()
	if _, exists := r.byKey[name]; exists {
		return fmt.Errorf("capability %q already registered", name)
	}
	r.order = append(r.order, name)
	r.byKey[name] = c
	return nil
}

// MustRegister panics on duplicate registration, for startup wiring.
func (r *Registry) MustRegister(c Capability) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Get returns the capability for name.
func (r *Registry) Get(name string) (Capability, bool) {
	c, ok := r.byKey[name]
	return c, ok
}

// Names lists capability names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All lists capabilities in registration order.
func (r *Registry) All() []Capability {
	out := make([]Capability, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byKey[name])
	}
	return out
}

// stringArg extracts an optional string argument, tolerating absent or
// mistyped values as empty.
func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func doctorParam() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"doctor_name": map[string]any{
				"type":        "string",
				"description": "Doctor name to look up, matched case-insensitively",
			},
		},
	}
}
