package dto

import (
	"fmt"
)

// Kind enumerates the target-schema type kinds a resolved field can have.
type Kind int

const (
	// KindAny accepts any value; used when no type information is available.
	KindAny Kind = iota
	KindInt
	KindBigInt
	KindString
	KindBool
	KindDateTime
	KindDate
	KindTime
	KindFloat
	KindDecimal
	KindJSON
	KindBytes
	KindEnum
	KindList
	KindObject
)

// kindNames maps storage scalar type names to kinds.
var kindNames = map[string]Kind{
	"Any":      KindAny,
	"Int":      KindInt,
	"BigInt":   KindBigInt,
	"String":   KindString,
	"Boolean":  KindBool,
	"DateTime": KindDateTime,
	"Date":     KindDate,
	"Time":     KindTime,
	"Float":    KindFloat,
	"Decimal":  KindDecimal,
	"Json":     KindJSON,
	"Bytes":    KindBytes,
}

// KindFromStorage maps a storage scalar type name to its kind.
func KindFromStorage(name string) (Kind, bool) {
	k, ok := kindNames[name]
	return k, ok
}

// String returns the scalar name of the kind.
func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	switch k {
	case KindEnum:
		return "Enum"
	case KindList:
		return "List"
	case KindObject:
		return "Object"
	}
	return "Any"
}

// Type is a resolved target-schema type descriptor.
type Type struct {
	Kind     Kind
	Optional bool

	// Elem is the element type for KindList.
	Elem *Type

	// Ref is the resolved schema for KindObject. RefName carries the
	// forward-reference name until Rebuild resolves it.
	Ref     *Schema
	RefName string

	// Enum carries the allowed values for KindEnum.
	EnumName string
	Enum     []string
}

// Scalar returns a required scalar type of the given kind.
func Scalar(kind Kind) Type {
	return Type{Kind: kind}
}

// List returns a list type over elem.
func List(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

// Object returns an object type referencing a synthesized schema.
func Object(schema *Schema) Type {
	return Type{Kind: KindObject, Ref: schema, RefName: schema.Name}
}

// ForwardRef returns an object type that references a schema by name only.
// Rebuild resolves it once the schema exists.
func ForwardRef(name string) Type {
	return Type{Kind: KindObject, RefName: name}
}

// EnumOf returns an enum type with the given name and allowed values.
func EnumOf(name string, values []string) Type {
	return Type{Kind: KindEnum, EnumName: name, Enum: values}
}

// AsOptional returns the type wrapped as optional. Already-optional types
// are returned unchanged, so wrapping never stacks.
func (t Type) AsOptional() Type {
	t.Optional = true
	return t
}

// IsOptional reports whether the type admits null.
func (t Type) IsOptional() bool {
	return t.Optional
}

// SchemaName returns the name of the referenced schema for object types.
func (t Type) SchemaName() string {
	if t.Ref != nil {
		return t.Ref.Name
	}
	return t.RefName
}

// String returns a compact representation used in error messages and for
// configuration fingerprints.
func (t Type) String() string {
	var s string
	switch t.Kind {
	case KindList:
		s = t.Elem.String() + "[]"
	case KindObject:
		s = t.SchemaName()
	case KindEnum:
		s = t.EnumName
	default:
		s = t.Kind.String()
	}
	if t.Optional {
		s += "?"
	}
	return s
}

// Equal reports whether two types describe the same target type. Object
// types compare by schema name.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind || t.Optional != other.Optional {
		return false
	}
	switch t.Kind {
	case KindList:
		return t.Elem.Equal(*other.Elem)
	case KindObject:
		return t.SchemaName() == other.SchemaName()
	case KindEnum:
		if t.EnumName != other.EnumName || len(t.Enum) != len(other.Enum) {
			return false
		}
		for i := range t.Enum {
			if t.Enum[i] != other.Enum[i] {
				return false
			}
		}
	}
	return true
}

// GoType returns the Go type the descriptor maps to in generated code.
// Optional scalars become pointers; lists, JSON and Any stay as-is.
func (t Type) GoType() string {
	var base string
	switch t.Kind {
	case KindInt:
		base = "int"
	case KindBigInt:
		base = "int64"
	case KindString, KindDecimal:
		base = "string"
	case KindBool:
		base = "bool"
	case KindDateTime, KindDate, KindTime:
		base = "time.Time"
	case KindFloat:
		base = "float64"
	case KindBytes:
		base = "[]byte"
	case KindJSON, KindAny:
		return "any"
	case KindEnum:
		base = "string"
	case KindList:
		return "[]" + t.Elem.GoType()
	case KindObject:
		base = t.SchemaName()
	default:
		return "any"
	}
	if t.Optional && t.Kind != KindBytes {
		return "*" + base
	}
	return base
}

// validate checks internal consistency; list types need an element type.
func (t Type) validate() error {
	if t.Kind == KindList && t.Elem == nil {
		return fmt.Errorf("list type without element type")
	}
	return nil
}
