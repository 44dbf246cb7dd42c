package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/overzetten/overzetten/entity"
)

// resolveColumnDefault determines a column field's default, in priority
// order: override metadata, per-attribute default overrides, storage-level
// defaults, server-side defaults, nullability. A column matching none of
// these is required.
func (r *Registry) resolveColumnDefault(attr string, col *entity.Column, cfg Config) Default {
	if d, ok := configuredDefault(attr, cfg); ok {
		return d
	}

	// Autoincrementing primary keys materialize in the database, so the
	// field is optional with a null default.
	if col.PrimaryKey && col.AutoIncrement {
		return NullDefault()
	}

	if col.Default != nil {
		switch col.Default.Kind {
		case entity.DefaultSequence:
			// Sequence values are assigned by the database.
			return NullDefault()
		case entity.DefaultNow:
			return FactoryDefault(func() any { return time.Now().UTC() })
		case entity.DefaultUUID:
			return FactoryDefault(func() any { return uuid.NewString() })
		case entity.DefaultULID:
			return FactoryDefault(func() any { return ulid.Make().String() })
		case entity.DefaultLiteral:
			return StaticDefault(col.Default.Value)
		}
	}

	if col.ServerDefault != "" {
		// The value materializes server-side; the field is not required.
		return NullDefault()
	}

	if col.Nullable {
		return NullDefault()
	}

	return RequiredField()
}

// resolveComputedDefault determines a computed property's default. Computed
// properties are generally required unless an override says otherwise or the
// declaration is optional.
func (r *Registry) resolveComputedDefault(comp *entity.Computed, cfg Config) Default {
	if d, ok := configuredDefault(comp.Name, cfg); ok {
		return d
	}
	if comp.Nullable {
		return NullDefault()
	}
	return RequiredField()
}

// resolveRelationshipDefault determines a relationship field's default.
// Relationships are always optional with a null default unless overridden.
func (r *Registry) resolveRelationshipDefault(rel *entity.Relationship, cfg Config) Default {
	if d, ok := configuredDefault(rel.Name, cfg); ok {
		return d
	}
	return NullDefault()
}

// configuredDefault applies the override layers shared by every attribute
// kind: mapped override metadata carrying a default, then the per-attribute
// Defaults map (FieldSpec as-is, func() any as factory, value as static).
func configuredDefault(attr string, cfg Config) (Default, bool) {
	if o, ok := cfg.Mapped[attr]; ok && o.Spec.HasDefault() {
		return specDefault(o.Spec), true
	}
	if v, ok := cfg.Defaults[attr]; ok {
		switch value := v.(type) {
		case *FieldSpec:
			if value.HasDefault() {
				return specDefault(value), true
			}
		case func() any:
			return FactoryDefault(value), true
		default:
			return StaticDefault(value), true
		}
	}
	return Default{}, false
}

func specDefault(spec *FieldSpec) Default {
	if spec.DefaultFactory != nil {
		return FactoryDefault(spec.DefaultFactory)
	}
	return StaticDefault(spec.Default)
}
