// Package dto derives validated DTO schema descriptors from introspected
// entity metadata. A Registry walks an entity's columns, computed properties,
// synonyms and relationships, resolves each attribute's target type and
// default under a Config policy, and synthesizes an immutable Schema.
package dto

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// FieldSpec carries field-level metadata for the target schema: an optional
// explicit default (static or factory) and validation constraints that
// survive into the exported JSON Schema.
type FieldSpec struct {
	// Annotation is the explicit target type. A FieldSpec with a nil
	// Annotation is a defaults-only marker: it contributes metadata but
	// leaves type inference to the resolver.
	Annotation *Type

	Default        any
	DefaultFactory func() any

	Description string
	Format      string
	Pattern     string
	MinLength   *int
	MaxLength   *int
	Minimum     *float64
	Maximum     *float64
}

// HasDefault reports whether the spec supplies a default or factory.
func (s *FieldSpec) HasDefault() bool {
	return s != nil && (s.Default != nil || s.DefaultFactory != nil)
}

// Override is a per-attribute mapping override. The three shapes mirror the
// configuration surface:
//   - type only: replaces the inferred target type;
//   - spec only (nil Annotation): a defaults-only marker, type still inferred;
//   - type plus spec: an annotated override whose metadata survives.
type Override struct {
	Type *Type
	Spec *FieldSpec
}

// TypeOverride builds an override that replaces the target type.
func TypeOverride(t Type) Override {
	return Override{Type: &t}
}

// SpecOverride builds an override from field metadata. If the spec carries
// its own annotation the override also sets the type.
func SpecOverride(spec *FieldSpec) Override {
	o := Override{Spec: spec}
	if spec != nil && spec.Annotation != nil {
		o.Type = spec.Annotation
	}
	return o
}

// Annotated builds an override combining an explicit type with metadata.
func Annotated(t Type, spec *FieldSpec) Override {
	return Override{Type: &t, Spec: spec}
}

// concreteType reports whether the override supplies a usable target type;
// a bare defaults-only marker does not.
func (o Override) concreteType() bool {
	return o.Type != nil
}

// SchemaOptions are the validation-config options carried onto synthesized
// schemas and into their exported JSON Schema documents.
type SchemaOptions struct {
	// AllowExtra permits properties beyond the declared fields.
	AllowExtra bool
}

// Config is the declarative derivation policy for one DTO. The zero value
// derives every column with the default "DTO" name suffix.
type Config struct {
	// Mapped overrides the target type or metadata per attribute.
	Mapped map[string]Override

	// Exclude removes attributes. Exclusion wins over inclusion and over
	// mapping overrides for the same attribute.
	Exclude []string

	// Include, when non-nil, is an allowlist: only these attributes are kept.
	Include []string

	// Name fixes the output schema name. When empty the name is
	// NamePrefix + entity name + NameSuffix.
	Name       string
	NamePrefix string
	NameSuffix string

	// Base is a schema whose fields are inherited ahead of the entity's.
	Base *Schema

	// IncludeRelationships enables relationship attributes.
	IncludeRelationships bool

	// DeepRelationships carries relationship derivation into nested schemas.
	// By default a related entity's schema contains columns only; with this
	// set, nested schemas include their own relationships, and circular
	// entity graphs resolve through forward references.
	DeepRelationships bool

	// Defaults overrides the default value per attribute. A func() any is a
	// default factory, a *FieldSpec is used as-is, any other value is a
	// static default.
	Defaults map[string]any

	// Options are carried onto the synthesized schema.
	Options SchemaOptions
}

// suffix returns the effective name suffix; auto-generated names default to
// the "DTO" suffix. Set Name to take full control of the output name.
func (c Config) suffix() string {
	if c.NameSuffix == "" {
		return "DTO"
	}
	return c.NameSuffix
}

// SchemaName computes the output schema name for an entity under this config.
func (c Config) SchemaName(entityName string) string {
	if c.Name != "" {
		return c.Name
	}
	return c.NamePrefix + entityName + c.suffix()
}

// excluded reports whether the attribute is excluded.
func (c Config) excluded(attr string) bool {
	for _, name := range c.Exclude {
		if name == attr {
			return true
		}
	}
	return false
}

// includes applies the exclusion-then-allowlist policy.
func (c Config) includes(attr string) bool {
	if c.excluded(attr) {
		return false
	}
	if c.Include != nil {
		for _, name := range c.Include {
			if name == attr {
				return true
			}
		}
		return false
	}
	return true
}

// Fingerprint returns a stable hash of the configuration, used when the
// registry cache keys on (entity, config). Every policy knob that can alter
// the synthesized schema contributes: names, attribute lists, override types
// and their full FieldSpec metadata, defaults, and the base schema's field
// shapes. Function values (default factories) contribute presence only, as
// they have no comparable identity.
func (c Config) Fingerprint() uint64 {
	var b strings.Builder
	fmt.Fprintf(&b, "name=%s;prefix=%s;suffix=%s;rel=%t;deep=%t;extra=%t;",
		c.Name, c.NamePrefix, c.NameSuffix, c.IncludeRelationships, c.DeepRelationships, c.Options.AllowExtra)
	if c.Base != nil {
		fmt.Fprintf(&b, "base=%s[", c.Base.Name)
		for i := range c.Base.Fields {
			f := &c.Base.Fields[i]
			fmt.Fprintf(&b, "%s:%s,", f.Name, f.Type.String())
		}
		b.WriteString("];")
	}
	writeSorted(&b, "exclude", c.Exclude)
	if c.Include != nil {
		writeSorted(&b, "include", c.Include)
	}
	for _, key := range sortedKeys(c.Mapped) {
		o := c.Mapped[key]
		fmt.Fprintf(&b, "mapped:%s=", key)
		if o.Type != nil {
			b.WriteString(o.Type.String())
		}
		if o.Spec != nil {
			b.WriteString("+")
			o.Spec.writeFingerprint(&b)
		}
		b.WriteString(";")
	}
	for _, key := range sortedKeys(c.Defaults) {
		switch v := c.Defaults[key].(type) {
		case func() any:
			fmt.Fprintf(&b, "default:%s=factory;", key)
		case *FieldSpec:
			fmt.Fprintf(&b, "default:%s=", key)
			v.writeFingerprint(&b)
			b.WriteString(";")
		default:
			fmt.Fprintf(&b, "default:%s=%v;", key, v)
		}
	}
	return xxhash.Sum64String(b.String())
}

// writeFingerprint writes the spec's full identity for config fingerprinting.
func (s *FieldSpec) writeFingerprint(b *strings.Builder) {
	if s == nil {
		b.WriteString("spec()")
		return
	}
	b.WriteString("spec(")
	if s.Annotation != nil {
		b.WriteString(s.Annotation.String())
	}
	fmt.Fprintf(b, ",default=%v,factory=%t,desc=%s,format=%s,pattern=%s",
		s.Default, s.DefaultFactory != nil, s.Description, s.Format, s.Pattern)
	fmt.Fprintf(b, ",minlen=%s,maxlen=%s,min=%s,max=%s)",
		intBound(s.MinLength), intBound(s.MaxLength), floatBound(s.Minimum), floatBound(s.Maximum))
}

func intBound(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func floatBound(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}

func writeSorted(b *strings.Builder, label string, values []string) {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	fmt.Fprintf(b, "%s=%s;", label, strings.Join(sorted, ","))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
