package rate

import (
	"fmt"
	"maps"
	"slices"

	"shopfx/internal/adapters"
)

// ProviderDescriptor describes one registered rate provider module.
type ProviderDescriptor struct {
	Key  string
	Name string
	New  func() (adapters.RateProvider, error)
}

// ProviderRegistry maps provider keys to descriptors. It is populated
// explicitly at process start and queried when the configured provider is
// validated, instead of baking the choices into static metadata.
type ProviderRegistry struct {
	descriptors map[string]ProviderDescriptor
}

func (r *ProviderRegistry) Register(d ProviderDescriptor) {
	r.descriptors[d.Key] = d
}

func (r *ProviderRegistry) Lookup(key string) (ProviderDescriptor, bool) {
	d, ok := r.descriptors[key]
	return d, ok
}

// Build constructs the provider registered under key, or fails naming the
// known keys.
func (r *ProviderRegistry) Build(key string) (adapters.RateProvider, error) {
	d, ok := r.descriptors[key]
	if !ok {
		return nil, fmt.Errorf("unknown rate provider %q, registered providers: %v", key, r.Keys())
	}
	return d.New()
}

func (r *ProviderRegistry) Keys() []string {
	return slices.Sorted(maps.Keys(r.descriptors))
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{descriptors: make(map[string]ProviderDescriptor)}
}
