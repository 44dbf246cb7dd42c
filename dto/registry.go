package dto

import (
	"sync"

	"github.com/overzetten/overzetten/entity"
	"github.com/overzetten/overzetten/internal/debug"
)

// CacheKeyMode controls what the registry's schema cache keys on.
type CacheKeyMode int

const (
	// KeyByEntityAndConfig keys the cache on the entity name plus a
	// fingerprint of the configuration, so distinct configs yield distinct
	// schemas. This is the default.
	KeyByEntityAndConfig CacheKeyMode = iota

	// KeyByEntity keys the cache on the entity name alone: the first
	// configuration used for an entity wins, and later derivations with a
	// different config return the original schema. Cheaper, but imprecise.
	KeyByEntity
)

type cacheKey struct {
	entity string
	config uint64
}

// Registry owns schema derivation for one entity set. It memoizes
// synthesized schemas — both for reuse and to stop infinite recursion over
// circular relationship graphs — and resolves forward references.
//
// The cache is guarded by a mutex; concurrent first-time derivations of the
// same entity serialize.
type Registry struct {
	set  *entity.Set
	mode CacheKeyMode

	mu     sync.Mutex
	cache  map[cacheKey]*Schema
	byName map[string]*Schema
}

// Option configures a Registry.
type Option func(*Registry)

// WithCacheKeyMode sets the cache key policy.
func WithCacheKeyMode(mode CacheKeyMode) Option {
	return func(r *Registry) { r.mode = mode }
}

// NewRegistry creates a registry over an introspected entity set.
func NewRegistry(set *entity.Set, opts ...Option) *Registry {
	r := &Registry{
		set:    set,
		mode:   KeyByEntityAndConfig,
		cache:  make(map[cacheKey]*Schema),
		byName: make(map[string]*Schema),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Set returns the entity set the registry derives from.
func (r *Registry) Set() *entity.Set {
	return r.set
}

// Derive synthesizes (or returns the cached) DTO schema for an entity under
// the given configuration.
func (r *Registry) Derive(entityName string, cfg Config) (*Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.derive(entityName, cfg, make(map[string]bool))
}

// derive is the locked derivation path. The processing set tracks entities
// currently being synthesized further up this call chain; relationship
// resolution consults it to break cycles.
func (r *Registry) derive(entityName string, cfg Config, processing map[string]bool) (*Schema, error) {
	if cached, ok := r.lookupLocked(entityName, cfg); ok {
		return cached, nil
	}

	ent, err := r.set.Introspect(entityName)
	if err != nil {
		return nil, err
	}

	processing[entityName] = true
	defer delete(processing, entityName)

	schema, err := r.synthesize(ent, cfg, processing)
	if err != nil {
		return nil, err
	}

	r.cache[r.key(entityName, cfg)] = schema
	r.byName[schema.Name] = schema
	debug.Debug("Schema cached", "entity", entityName, "schema", schema.Name)
	return schema, nil
}

// lookupLocked returns the cached schema for (entity, config) under the key
// mode. Callers hold r.mu.
func (r *Registry) lookupLocked(entityName string, cfg Config) (*Schema, bool) {
	schema, ok := r.cache[r.key(entityName, cfg)]
	return schema, ok
}

func (r *Registry) key(entityName string, cfg Config) cacheKey {
	key := cacheKey{entity: entityName}
	if r.mode == KeyByEntityAndConfig {
		key.config = cfg.Fingerprint()
	}
	return key
}

// SchemaByName returns a synthesized schema by its output name, for forward
// reference resolution.
func (r *Registry) SchemaByName(name string) (*Schema, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	schema, ok := r.byName[name]
	return schema, ok
}

// Schemas returns every synthesized schema.
func (r *Registry) Schemas() []*Schema {
	r.mu.Lock()
	defer r.mu.Unlock()
	schemas := make([]*Schema, 0, len(r.byName))
	for _, s := range r.byName {
		schemas = append(schemas, s)
	}
	return schemas
}

// RebuildAll resolves forward references on every synthesized schema.
func (r *Registry) RebuildAll() error {
	for _, schema := range r.Schemas() {
		if err := schema.Rebuild(r); err != nil {
			return err
		}
	}
	return nil
}
