// Package entity models introspected entity metadata: the columns, computed
// properties, synonyms and relationships of a declared entity, each as its
// own attribute kind.
package entity

// DefaultKind classifies a column-level storage default.
type DefaultKind int

const (
	// DefaultLiteral is a static scalar default.
	DefaultLiteral DefaultKind = iota
	// DefaultNow is a timestamp generated at insertion time.
	DefaultNow
	// DefaultUUID is a generated UUID string.
	DefaultUUID
	// DefaultULID is a generated ULID string.
	DefaultULID
	// DefaultSequence is a database sequence; the value materializes in the
	// database, never client-side.
	DefaultSequence
)

// Default describes a column's storage-level default.
type Default struct {
	Kind  DefaultKind
	Value any    // literal value for DefaultLiteral
	Name  string // sequence name for DefaultSequence
}

// Column is a plain storage column attribute.
type Column struct {
	Name          string
	ColumnName    string // physical column name (@map), defaults to Name
	StorageType   string // scalar type or enum name
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
	Unique        bool
	Default       *Default
	ServerDefault string // SQL expression from dbgenerated, "" if none
	DTOType       string // explicit @dto type expression, "" if none
	Doc           string
}

// Computed is an expression-derived property attribute.
type Computed struct {
	Name     string
	Expr     string // SQL expression the property derives from
	Type     string // declared scalar type, "" if undeclared
	Nullable bool
	DTOType  string
	Doc      string
}

// Synonym is an alias attribute resolved to an underlying column.
type Synonym struct {
	Name   string
	Of     string
	Column *Column // resolved underlying column
}

// Relationship is a reference attribute to another entity.
type Relationship struct {
	Name    string
	Target  string
	ToMany  bool
	BackRef string
	Doc     string
}

// Entity is the introspected metadata of one declared entity. Attribute
// groupings keep declaration order: columns, computed properties, synonyms,
// relationships.
type Entity struct {
	Name      string
	TableName string // "" for abstract entities
	Doc       string
	Abstract  bool

	Columns       []*Column
	Computed      []*Computed
	Synonyms      []*Synonym
	Relationships []*Relationship
}

// Column returns the column attribute with the given name, or nil.
func (e *Entity) Column(name string) *Column {
	for _, c := range e.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasAttribute reports whether any attribute of the entity has the given name.
func (e *Entity) HasAttribute(name string) bool {
	for _, c := range e.Columns {
		if c.Name == name {
			return true
		}
	}
	for _, c := range e.Computed {
		if c.Name == name {
			return true
		}
	}
	for _, s := range e.Synonyms {
		if s.Name == name {
			return true
		}
	}
	for _, r := range e.Relationships {
		if r.Name == name {
			return true
		}
	}
	return false
}

// AttributeNames returns all attribute names in grouping order.
func (e *Entity) AttributeNames() []string {
	names := make([]string, 0, len(e.Columns)+len(e.Computed)+len(e.Synonyms)+len(e.Relationships))
	for _, c := range e.Columns {
		names = append(names, c.Name)
	}
	for _, c := range e.Computed {
		names = append(names, c.Name)
	}
	for _, s := range e.Synonyms {
		names = append(names, s.Name)
	}
	for _, r := range e.Relationships {
		names = append(names, r.Name)
	}
	return names
}
