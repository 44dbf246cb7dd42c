package dto

import (
	"encoding/json"
)

const jsonSchemaDialect = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema exports the schema as a JSON Schema document. Nested schemas
// land under $defs and are referenced by name, which keeps recursive and
// mutually-circular schemas representable.
func (s *Schema) JSONSchema() map[string]any {
	doc := s.jsonSchemaObject()
	doc["$schema"] = jsonSchemaDialect
	// The root schema may appear in $defs as well when it references
	// itself; the duplication keeps every $ref target resolvable.
	defs := make(map[string]any)
	collectDefs(s, defs, make(map[string]bool))
	if len(defs) > 0 {
		doc["$defs"] = defs
	}
	return doc
}

// MarshalJSON renders the exported JSON Schema document.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.JSONSchema())
}

// jsonSchemaObject renders the schema as a bare object schema, without the
// dialect header or $defs.
func (s *Schema) jsonSchemaObject() map[string]any {
	properties := make(map[string]any, len(s.Fields))
	for i := range s.Fields {
		properties[s.Fields[i].Name] = fieldSchema(&s.Fields[i])
	}
	obj := map[string]any{
		"title":                s.Name,
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": s.Options.AllowExtra,
	}
	if s.Doc != "" {
		obj["description"] = s.Doc
	}
	if required := s.RequiredFields(); len(required) > 0 {
		obj["required"] = required
	}
	return obj
}

// fieldSchema renders one field: its type, nullability, default and any
// override metadata.
func fieldSchema(f *Field) map[string]any {
	// A null default admits null even when the storage type itself is not
	// optional (autoincrement keys, server-side defaults).
	nullable := f.Type.IsOptional() || f.Default.Mode == ModeNull
	prop := typeSchema(f.Type, nullable)

	switch f.Default.Mode {
	case ModeNull:
		prop["default"] = nil
	case ModeStatic:
		prop["default"] = f.Default.Value
	}
	if f.Doc != "" {
		prop["description"] = f.Doc
	}
	if f.Spec != nil {
		applySpec(prop, f.Spec)
	}
	return prop
}

// typeSchema renders a type descriptor. Nullable scalar types use a type
// union; references and enums wrap in anyOf.
func typeSchema(t Type, nullable bool) map[string]any {
	var prop map[string]any
	switch t.Kind {
	case KindInt, KindBigInt:
		prop = map[string]any{"type": "integer"}
	case KindString:
		prop = map[string]any{"type": "string"}
	case KindBool:
		prop = map[string]any{"type": "boolean"}
	case KindFloat, KindDecimal:
		prop = map[string]any{"type": "number"}
	case KindDateTime:
		prop = map[string]any{"type": "string", "format": "date-time"}
	case KindDate:
		prop = map[string]any{"type": "string", "format": "date"}
	case KindTime:
		prop = map[string]any{"type": "string", "format": "time"}
	case KindBytes:
		prop = map[string]any{"type": "string", "contentEncoding": "base64"}
	case KindJSON, KindAny:
		// Anything goes, including null.
		return map[string]any{}
	case KindEnum:
		prop = map[string]any{"type": "string", "enum": append([]string(nil), t.Enum...)}
	case KindList:
		prop = map[string]any{"type": "array", "items": typeSchema(*t.Elem, t.Elem.IsOptional())}
	case KindObject:
		prop = map[string]any{"$ref": "#/$defs/" + t.SchemaName()}
	default:
		return map[string]any{}
	}

	if !nullable {
		return prop
	}
	switch t.Kind {
	case KindEnum, KindObject:
		return map[string]any{"anyOf": []any{prop, map[string]any{"type": "null"}}}
	default:
		if typ, ok := prop["type"].(string); ok {
			prop["type"] = []string{typ, "null"}
		}
		return prop
	}
}

// applySpec merges override metadata into a rendered property.
func applySpec(prop map[string]any, spec *FieldSpec) {
	if spec.Description != "" {
		prop["description"] = spec.Description
	}
	if spec.Format != "" {
		prop["format"] = spec.Format
	}
	if spec.Pattern != "" {
		prop["pattern"] = spec.Pattern
	}
	if spec.MinLength != nil {
		prop["minLength"] = *spec.MinLength
	}
	if spec.MaxLength != nil {
		prop["maxLength"] = *spec.MaxLength
	}
	if spec.Minimum != nil {
		prop["minimum"] = *spec.Minimum
	}
	if spec.Maximum != nil {
		prop["maximum"] = *spec.Maximum
	}
}

// collectDefs walks the schema graph and records every referenced schema
// once. Unresolved forward references are skipped; Rebuild fills them in.
func collectDefs(s *Schema, defs map[string]any, visited map[string]bool) {
	for i := range s.Fields {
		collectTypeDefs(s.Fields[i].Type, defs, visited)
	}
}

func collectTypeDefs(t Type, defs map[string]any, visited map[string]bool) {
	switch t.Kind {
	case KindList:
		collectTypeDefs(*t.Elem, defs, visited)
	case KindObject:
		ref := t.Ref
		if ref == nil || visited[ref.Name] {
			return
		}
		visited[ref.Name] = true
		defs[ref.Name] = ref.jsonSchemaObject()
		collectDefs(ref, defs, visited)
	}
}
