package dto

import (
	"fmt"

	"github.com/overzetten/overzetten/entity"
	"github.com/overzetten/overzetten/esl"
	"github.com/overzetten/overzetten/internal/debug"
)

// synthesize assembles the schema for one entity under one config. The
// processing set carries the entities currently being derived so circular
// relationship graphs short-circuit into forward references.
func (r *Registry) synthesize(ent *entity.Entity, cfg Config, processing map[string]bool) (*Schema, error) {
	if err := r.validateOverrides(ent, cfg); err != nil {
		return nil, err
	}

	schema := &Schema{
		Name:    cfg.SchemaName(ent.Name),
		Entity:  ent.Name,
		Doc:     ent.Doc,
		Options: cfg.Options,
	}

	if cfg.Base != nil {
		schema.Fields = append(schema.Fields, cfg.Base.Fields...)
	}

	// Field order is fixed: columns, computed properties, synonyms, then
	// relationships when enabled.
	for _, col := range ent.Columns {
		if !cfg.includes(col.Name) {
			continue
		}
		fieldType, err := r.resolveColumnType(col.Name, col, cfg)
		if err != nil {
			return nil, err
		}
		schema.Fields = append(schema.Fields, Field{
			Name:    col.Name,
			Type:    fieldType,
			Default: r.resolveColumnDefault(col.Name, col, cfg),
			Spec:    overrideSpec(col.Name, cfg),
			Doc:     col.Doc,
		})
	}

	for _, comp := range ent.Computed {
		if !cfg.includes(comp.Name) {
			continue
		}
		fieldType, err := r.resolveComputedType(comp, cfg)
		if err != nil {
			return nil, err
		}
		schema.Fields = append(schema.Fields, Field{
			Name:    comp.Name,
			Type:    fieldType,
			Default: r.resolveComputedDefault(comp, cfg),
			Spec:    overrideSpec(comp.Name, cfg),
			Doc:     comp.Doc,
		})
	}

	for _, syn := range ent.Synonyms {
		if !cfg.includes(syn.Name) {
			continue
		}
		// A synonym takes its type and default from the underlying column.
		fieldType, err := r.resolveColumnType(syn.Name, syn.Column, cfg)
		if err != nil {
			return nil, err
		}
		schema.Fields = append(schema.Fields, Field{
			Name:    syn.Name,
			Type:    fieldType,
			Default: r.resolveColumnDefault(syn.Name, syn.Column, cfg),
			Spec:    overrideSpec(syn.Name, cfg),
		})
	}

	if cfg.IncludeRelationships {
		for _, rel := range ent.Relationships {
			if !cfg.includes(rel.Name) {
				continue
			}
			fieldType, err := r.resolveRelationshipType(rel, cfg, processing)
			if err != nil {
				return nil, err
			}
			schema.Fields = append(schema.Fields, Field{
				Name:    rel.Name,
				Type:    fieldType,
				Default: r.resolveRelationshipDefault(rel, cfg),
				Spec:    overrideSpec(rel.Name, cfg),
				Doc:     rel.Doc,
			})
		}
	}

	debug.Debug("Schema synthesized", "entity", ent.Name, "schema", schema.Name, "fields", len(schema.Fields))
	return schema, nil
}

// validateOverrides rejects configuration that names attributes the entity
// does not have.
func (r *Registry) validateOverrides(ent *entity.Entity, cfg Config) error {
	for _, name := range sortedKeys(cfg.Mapped) {
		if !ent.HasAttribute(name) {
			return fmt.Errorf("mapped attribute %q does not exist on entity %q", name, ent.Name)
		}
	}
	for _, name := range sortedKeys(cfg.Defaults) {
		if !ent.HasAttribute(name) {
			return fmt.Errorf("default override for attribute %q does not exist on entity %q", name, ent.Name)
		}
	}
	return nil
}

// overrideSpec returns the FieldSpec metadata attached to an attribute's
// override or default override, if any.
func overrideSpec(attr string, cfg Config) *FieldSpec {
	if o, ok := cfg.Mapped[attr]; ok && o.Spec != nil {
		return o.Spec
	}
	if v, ok := cfg.Defaults[attr]; ok {
		if spec, ok := v.(*FieldSpec); ok {
			return spec
		}
	}
	return nil
}

// resolveColumnType resolves the target type of a column (or of a synonym,
// through its underlying column). attr is the attribute name the override
// policy applies to, which differs from col.Name for synonyms.
func (r *Registry) resolveColumnType(attr string, col *entity.Column, cfg Config) (Type, error) {
	fieldType, resolved, err := r.overrideType(attr, cfg)
	if err != nil {
		return Type{}, err
	}

	if !resolved && col.DTOType != "" {
		fieldType, err = r.typeFromExpr(col.DTOType)
		if err != nil {
			return Type{}, fmt.Errorf("invalid @dto annotation on %q: %w", attr, err)
		}
		resolved = true
	}

	if !resolved {
		fieldType = r.storageType(col.StorageType)
	}

	if col.Nullable && !fieldType.IsOptional() {
		fieldType = fieldType.AsOptional()
	}
	return fieldType, nil
}

// resolveComputedType resolves the target type of a computed property.
// Expression-derived properties fall back to their declared type, or Any
// when the declaration carries none.
func (r *Registry) resolveComputedType(comp *entity.Computed, cfg Config) (Type, error) {
	fieldType, resolved, err := r.overrideType(comp.Name, cfg)
	if err != nil {
		return Type{}, err
	}

	if !resolved && comp.DTOType != "" {
		fieldType, err = r.typeFromExpr(comp.DTOType)
		if err != nil {
			return Type{}, fmt.Errorf("invalid @dto annotation on %q: %w", comp.Name, err)
		}
		resolved = true
	}

	if !resolved {
		if comp.Type != "" {
			fieldType = r.storageType(comp.Type)
		} else {
			fieldType = Scalar(KindAny)
		}
	}

	if comp.Nullable && !fieldType.IsOptional() {
		fieldType = fieldType.AsOptional()
	}
	return fieldType, nil
}

// resolveRelationshipType resolves a relationship attribute by deriving (or
// fetching from cache) the related entity's schema. An entity already in the
// processing set yields a forward-reference name instead of recursing.
// To-many relationships wrap in a list; to-one relationships are optional.
func (r *Registry) resolveRelationshipType(rel *entity.Relationship, cfg Config, processing map[string]bool) (Type, error) {
	fieldType, resolved, err := r.overrideType(rel.Name, cfg)
	if err != nil {
		return Type{}, err
	}

	if !resolved {
		// Related schemas derive under a minimal config carrying the naming
		// suffix, so nested DTOs name consistently. They contain columns only
		// unless DeepRelationships keeps relationship derivation going, in
		// which case circular graphs reach the forward-reference short
		// circuit below.
		relCfg := Config{NameSuffix: cfg.suffix()}
		if cfg.DeepRelationships {
			relCfg.IncludeRelationships = true
			relCfg.DeepRelationships = true
		}
		fieldType, err = r.relatedType(rel.Target, relCfg, processing)
		if err != nil {
			return Type{}, err
		}
		if rel.ToMany {
			fieldType = List(fieldType)
		}
	}

	if !rel.ToMany && !fieldType.IsOptional() {
		fieldType = fieldType.AsOptional()
	}
	return fieldType, nil
}

// relatedType returns the object type for a related entity: the cached
// schema, a freshly derived one, or a forward reference when the entity is
// already being derived further up the call chain.
func (r *Registry) relatedType(target string, relCfg Config, processing map[string]bool) (Type, error) {
	if cached, ok := r.lookupLocked(target, relCfg); ok {
		return Object(cached), nil
	}
	if processing[target] {
		debug.Debug("Circular relationship detected", "entity", target)
		return ForwardRef(relCfg.SchemaName(target)), nil
	}
	related, err := r.derive(target, relCfg, processing)
	if err != nil {
		return Type{}, err
	}
	return Object(related), nil
}

// overrideType applies step one of type resolution: an explicit config
// override that supplies a concrete type (a bare defaults-only marker does
// not count).
func (r *Registry) overrideType(attr string, cfg Config) (Type, bool, error) {
	o, ok := cfg.Mapped[attr]
	if !ok || !o.concreteType() {
		return Type{}, false, nil
	}
	if err := o.Type.validate(); err != nil {
		return Type{}, false, fmt.Errorf("invalid mapped type for %q: %w", attr, err)
	}
	return *o.Type, true, nil
}

// storageType maps a storage type name to its target type: a scalar kind,
// a declared enum, or Any when nothing matches.
func (r *Registry) storageType(name string) Type {
	if kind, ok := KindFromStorage(name); ok {
		return Scalar(kind)
	}
	if values, ok := r.set.EnumValues(name); ok {
		return EnumOf(name, values)
	}
	return Scalar(KindAny)
}

func (r *Registry) typeFromExpr(input string) (Type, error) {
	return TypeFromExpr(r.set, input)
}

// TypeFromExpr resolves a type expression from an @dto annotation or a
// configuration file against an entity set: scalars and enums resolve
// directly, any other name becomes a forward reference resolved by Rebuild.
func TypeFromExpr(set *entity.Set, input string) (Type, error) {
	expr, err := esl.ParseTypeExpr(input)
	if err != nil {
		return Type{}, err
	}
	var t Type
	if kind, ok := KindFromStorage(expr.Name); ok {
		t = Scalar(kind)
	} else if values, ok := set.EnumValues(expr.Name); ok {
		t = EnumOf(expr.Name, values)
	} else {
		t = ForwardRef(expr.Name)
	}
	if expr.List {
		t = List(t)
	}
	if expr.Optional {
		t = t.AsOptional()
	}
	return t, nil
}
