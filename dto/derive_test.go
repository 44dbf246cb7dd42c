package dto

import (
	"strings"
	"testing"

	"github.com/overzetten/overzetten/entity"
	"github.com/overzetten/overzetten/esl"
)

func registryFor(t *testing.T, input string, opts ...Option) *Registry {
	t.Helper()
	schema, err := esl.ParseSchemaString("test.esl", input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	set, err := entity.FromSchema(schema)
	if err != nil {
		t.Fatalf("introspection failed: %v", err)
	}
	return NewRegistry(set, opts...)
}

const userSchema = `
entity User {
  id       Int     @id
  name     String
  fullname String?
}
`

func TestDeriveBasic(t *testing.T) {
	reg := registryFor(t, userSchema)

	schema, err := reg.Derive("User", Config{})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if schema.Name != "UserDTO" {
		t.Errorf("Expected name 'UserDTO', got %q", schema.Name)
	}

	names := schema.FieldNames()
	want := []string{"id", "name", "fullname"}
	if len(names) != len(want) {
		t.Fatalf("Expected fields %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Field %d: expected %q, got %q", i, want[i], names[i])
		}
	}

	id, _ := schema.Field("id")
	if id.Type.Kind != KindInt || id.Type.IsOptional() {
		t.Errorf("Expected required int id, got %s", id.Type)
	}
	if !id.Default.IsRequired() {
		t.Errorf("Expected id to be required")
	}

	name, _ := schema.Field("name")
	if name.Type.Kind != KindString || !name.Default.IsRequired() {
		t.Errorf("Expected required string name, got %s", name.Type)
	}

	fullname, _ := schema.Field("fullname")
	if !fullname.Type.IsOptional() {
		t.Errorf("Expected optional fullname, got %s", fullname.Type)
	}
	if fullname.Default.Mode != ModeNull {
		t.Errorf("Expected null default on fullname, got %v", fullname.Default.Mode)
	}
}

func TestDeriveExclude(t *testing.T) {
	reg := registryFor(t, userSchema)

	schema, err := reg.Derive("User", Config{Exclude: []string{"id"}})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	names := schema.FieldNames()
	if len(names) != 2 || names[0] != "name" || names[1] != "fullname" {
		t.Errorf("Expected fields [name fullname], got %v", names)
	}
}

func TestExclusionWinsOverInclusionAndMapping(t *testing.T) {
	reg := registryFor(t, userSchema)

	schema, err := reg.Derive("User", Config{
		Exclude: []string{"name"},
		Include: []string{"name", "id"},
		Mapped:  map[string]Override{"name": TypeOverride(Scalar(KindAny))},
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if _, ok := schema.Field("name"); ok {
		t.Errorf("Excluded field 'name' must not appear, got %v", schema.FieldNames())
	}
	if _, ok := schema.Field("id"); !ok {
		t.Errorf("Included field 'id' missing, got %v", schema.FieldNames())
	}
}

func TestIncludeAllowlist(t *testing.T) {
	reg := registryFor(t, userSchema)

	schema, err := reg.Derive("User", Config{Include: []string{"name"}})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if len(schema.Fields) != 1 || schema.Fields[0].Name != "name" {
		t.Errorf("Expected only 'name', got %v", schema.FieldNames())
	}
}

func TestAutoincrementPrimaryKey(t *testing.T) {
	reg := registryFor(t, `
entity User {
  id   Int    @id @default(autoincrement())
  name String
}
`)

	schema, err := reg.Derive("User", Config{})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	id, _ := schema.Field("id")
	if id.Default.Mode != ModeNull {
		t.Errorf("Autoincrement primary key should default to null, got %v", id.Default.Mode)
	}
	name, _ := schema.Field("name")
	if !name.Default.IsRequired() {
		t.Errorf("Expected name to stay required")
	}
}

func TestStorageDefaults(t *testing.T) {
	reg := registryFor(t, `
entity Doc {
  id      String   @id @default(uuid())
  ref     String   @default(ulid())
  state   String   @default("draft")
  retries Int      @default(3)
  seq     Int      @default(sequence("doc_seq"))
  stamped DateTime @default(dbgenerated("CURRENT_TIMESTAMP"))
}
`)

	schema, err := reg.Derive("Doc", Config{})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	id, _ := schema.Field("id")
	if id.Default.Mode != ModeFactory {
		t.Fatalf("Expected factory default for uuid, got %v", id.Default.Mode)
	}
	if v, ok := id.Default.Factory().(string); !ok || len(v) != 36 {
		t.Errorf("Expected generated UUID string, got %v", id.Default.Factory())
	}

	ref, _ := schema.Field("ref")
	if ref.Default.Mode != ModeFactory {
		t.Fatalf("Expected factory default for ulid, got %v", ref.Default.Mode)
	}
	if v, ok := ref.Default.Factory().(string); !ok || len(v) != 26 {
		t.Errorf("Expected generated ULID string, got %v", ref.Default.Factory())
	}

	state, _ := schema.Field("state")
	if state.Default.Mode != ModeStatic || state.Default.Value != "draft" {
		t.Errorf("Expected static default 'draft', got %+v", state.Default)
	}

	retries, _ := schema.Field("retries")
	if retries.Default.Mode != ModeStatic || retries.Default.Value != int64(3) {
		t.Errorf("Expected static default 3, got %+v", retries.Default)
	}

	seq, _ := schema.Field("seq")
	if seq.Default.Mode != ModeNull {
		t.Errorf("Sequence default should resolve to null, got %v", seq.Default.Mode)
	}

	stamped, _ := schema.Field("stamped")
	if stamped.Default.Mode != ModeNull {
		t.Errorf("Server default should resolve to null, got %v", stamped.Default.Mode)
	}
}

func TestMappedTypeOverride(t *testing.T) {
	reg := registryFor(t, userSchema)

	minLen := 1
	schema, err := reg.Derive("User", Config{
		Mapped: map[string]Override{
			"name": Annotated(Scalar(KindString), &FieldSpec{Format: "email", MinLength: &minLen}),
			"id":   TypeOverride(Scalar(KindBigInt)),
		},
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	id, _ := schema.Field("id")
	if id.Type.Kind != KindBigInt {
		t.Errorf("Expected BigInt override on id, got %s", id.Type)
	}

	name, _ := schema.Field("name")
	if name.Spec == nil || name.Spec.Format != "email" {
		t.Errorf("Annotated override metadata lost: %+v", name.Spec)
	}
}

func TestDefaultsOnlyMarkerKeepsInferredType(t *testing.T) {
	reg := registryFor(t, userSchema)

	schema, err := reg.Derive("User", Config{
		Mapped: map[string]Override{
			"name": SpecOverride(&FieldSpec{Default: "anonymous"}),
		},
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	name, _ := schema.Field("name")
	if name.Type.Kind != KindString {
		t.Errorf("Defaults-only marker must not change the type, got %s", name.Type)
	}
	if name.Default.Mode != ModeStatic || name.Default.Value != "anonymous" {
		t.Errorf("Expected spec default, got %+v", name.Default)
	}
}

func TestMappedUnknownAttribute(t *testing.T) {
	reg := registryFor(t, userSchema)

	_, err := reg.Derive("User", Config{
		Mapped: map[string]Override{"nonexistent": TypeOverride(Scalar(KindString))},
	})
	if err == nil {
		t.Fatalf("Expected error for unknown mapped attribute")
	}
	if !strings.Contains(err.Error(), `"nonexistent"`) || !strings.Contains(err.Error(), `"User"`) {
		t.Errorf("Error should name attribute and entity: %v", err)
	}
}

func TestDefaultOverrides(t *testing.T) {
	reg := registryFor(t, userSchema)

	calls := 0
	schema, err := reg.Derive("User", Config{
		Defaults: map[string]any{
			"name":     "anonymous",
			"fullname": func() any { calls++; return "generated" },
		},
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	name, _ := schema.Field("name")
	if name.Default.Mode != ModeStatic || name.Default.Value != "anonymous" {
		t.Errorf("Expected static default override, got %+v", name.Default)
	}

	fullname, _ := schema.Field("fullname")
	if fullname.Default.Mode != ModeFactory {
		t.Fatalf("Expected factory default override, got %v", fullname.Default.Mode)
	}
	if fullname.Default.Factory() != "generated" || calls != 1 {
		t.Errorf("Factory not wired correctly")
	}
}

func TestDefaultOverrideUnknownAttribute(t *testing.T) {
	reg := registryFor(t, userSchema)

	_, err := reg.Derive("User", Config{Defaults: map[string]any{"missing": 1}})
	if err == nil || !strings.Contains(err.Error(), `"missing"`) {
		t.Fatalf("Expected error naming the unknown attribute, got %v", err)
	}
}

func TestDeriveAbstractEntity(t *testing.T) {
	reg := registryFor(t, `
entity Base {
  created_at DateTime @default(now())

  @@abstract
}
`)

	_, err := reg.Derive("Base", Config{})
	if err == nil || !strings.Contains(err.Error(), `"Base"`) {
		t.Fatalf("Expected abstract entity error naming the entity, got %v", err)
	}
}

func TestDeriveDeterminism(t *testing.T) {
	cfg := Config{Exclude: []string{"id"}}

	first, err := registryFor(t, userSchema).Derive("User", cfg)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	second, err := registryFor(t, userSchema).Derive("User", cfg)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if len(first.Fields) != len(second.Fields) {
		t.Fatalf("Field counts differ: %d vs %d", len(first.Fields), len(second.Fields))
	}
	for i := range first.Fields {
		if first.Fields[i].Name != second.Fields[i].Name {
			t.Errorf("Field %d name differs: %q vs %q", i, first.Fields[i].Name, second.Fields[i].Name)
		}
		if !first.Fields[i].Type.Equal(second.Fields[i].Type) {
			t.Errorf("Field %q type differs: %s vs %s", first.Fields[i].Name, first.Fields[i].Type, second.Fields[i].Type)
		}
	}
}

func TestCacheKeyModes(t *testing.T) {
	// Default mode: distinct configs yield distinct schemas.
	reg := registryFor(t, userSchema)
	full, _ := reg.Derive("User", Config{})
	trimmed, err := reg.Derive("User", Config{Exclude: []string{"id"}, Name: "TrimmedUser"})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if full == trimmed {
		t.Errorf("KeyByEntityAndConfig must not share schemas across configs")
	}
	again, _ := reg.Derive("User", Config{})
	if again != full {
		t.Errorf("Same config should return the cached schema instance")
	}

	// Entity-only mode: first derivation wins.
	legacy := registryFor(t, userSchema, WithCacheKeyMode(KeyByEntity))
	first, _ := legacy.Derive("User", Config{})
	second, err := legacy.Derive("User", Config{Exclude: []string{"id"}})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if first != second {
		t.Errorf("KeyByEntity should return the first schema for any config")
	}
}

func TestCacheDistinguishesOverrideMetadata(t *testing.T) {
	reg := registryFor(t, userSchema)

	withPattern := func(pattern string) Config {
		return Config{Mapped: map[string]Override{
			"name": SpecOverride(&FieldSpec{Pattern: pattern}),
		}}
	}
	first, err := reg.Derive("User", withPattern("^a"))
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	second, err := reg.Derive("User", withPattern("^b"))
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if first == second {
		t.Fatalf("Configs differing in spec metadata must not share a cache entry")
	}
	name, _ := second.Field("name")
	if name.Spec == nil || name.Spec.Pattern != "^b" {
		t.Errorf("Second derivation carries the first config's spec: %+v", name.Spec)
	}
}

func TestFingerprintCoversAllPolicyKnobs(t *testing.T) {
	minOne, minTwo := 1, 2
	lowOne, lowTwo := 1.0, 2.0
	marker := func(spec *FieldSpec) Config {
		return Config{Mapped: map[string]Override{"name": SpecOverride(spec)}}
	}

	cases := []struct {
		name string
		a, b Config
	}{
		{"pattern", marker(&FieldSpec{Pattern: "^a"}), marker(&FieldSpec{Pattern: "^b"})},
		{"min length", marker(&FieldSpec{MinLength: &minOne}), marker(&FieldSpec{MinLength: &minTwo})},
		{"max length", marker(&FieldSpec{MaxLength: &minOne}), marker(&FieldSpec{MaxLength: &minTwo})},
		{"minimum", marker(&FieldSpec{Minimum: &lowOne}), marker(&FieldSpec{Minimum: &lowTwo})},
		{"maximum", marker(&FieldSpec{Maximum: &lowOne}), marker(&FieldSpec{Maximum: &lowTwo})},
		{"description", marker(&FieldSpec{Description: "a"}), marker(&FieldSpec{Description: "b"})},
		{"factory presence", marker(&FieldSpec{}), marker(&FieldSpec{DefaultFactory: func() any { return 1 }})},
		{
			"default spec metadata",
			Config{Defaults: map[string]any{"name": &FieldSpec{Format: "email"}}},
			Config{Defaults: map[string]any{"name": &FieldSpec{Format: "uri"}}},
		},
		{
			"base schema fields",
			Config{Base: &Schema{Name: "Base", Fields: []Field{{Name: "tag", Type: Scalar(KindString)}}}},
			Config{Base: &Schema{Name: "Base", Fields: []Field{{Name: "tag", Type: Scalar(KindInt)}}}},
		},
		{"deep relationships", Config{IncludeRelationships: true}, Config{IncludeRelationships: true, DeepRelationships: true}},
	}
	for _, tc := range cases {
		if tc.a.Fingerprint() == tc.b.Fingerprint() {
			t.Errorf("%s: distinct configs fingerprint identically", tc.name)
		}
	}
}

const blogSchema = `
entity User {
  id        Int       @id @default(autoincrement())
  name      String
  addresses Address[] @relation(backref: "user")
}

entity Address {
  id    Int    @id @default(autoincrement())
  email String
  user  User?  @relation(backref: "addresses")
}
`

func TestRelationshipsDisabledByDefault(t *testing.T) {
	reg := registryFor(t, blogSchema)

	schema, err := reg.Derive("User", Config{})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if _, ok := schema.Field("addresses"); ok {
		t.Errorf("Relationships must be excluded unless enabled, got %v", schema.FieldNames())
	}
	if len(schema.Fields) != 2 {
		t.Errorf("Expected exactly the 2 columns, got %v", schema.FieldNames())
	}
}

func TestRelationshipFields(t *testing.T) {
	reg := registryFor(t, blogSchema)

	schema, err := reg.Derive("User", Config{IncludeRelationships: true})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	addresses, ok := schema.Field("addresses")
	if !ok {
		t.Fatalf("Expected addresses relationship field")
	}
	if addresses.Type.Kind != KindList {
		t.Fatalf("Expected list type for to-many, got %s", addresses.Type)
	}
	if addresses.Type.Elem.Kind != KindObject {
		t.Fatalf("Expected object element type, got %s", addresses.Type.Elem)
	}
	if addresses.Type.IsOptional() {
		t.Errorf("To-many relationships are not optional")
	}
	if addresses.Default.Mode != ModeNull {
		t.Errorf("Relationship default should be null, got %v", addresses.Default.Mode)
	}

	// Nested schemas contain columns only: the address back-reference stays
	// out unless DeepRelationships is set.
	nested := addresses.Type.Elem.Ref
	if nested == nil || nested.Name != "AddressDTO" {
		t.Fatalf("Expected resolved AddressDTO, got %+v", addresses.Type.Elem)
	}
	if _, ok := nested.Field("user"); ok {
		t.Errorf("Nested schema should carry columns only, got %v", nested.FieldNames())
	}
	if len(nested.Fields) != 2 {
		t.Errorf("Expected the 2 address columns, got %v", nested.FieldNames())
	}
}

func TestDeepRelationships(t *testing.T) {
	reg := registryFor(t, blogSchema)

	schema, err := reg.Derive("User", Config{IncludeRelationships: true, DeepRelationships: true})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if err := reg.RebuildAll(); err != nil {
		t.Fatalf("RebuildAll failed: %v", err)
	}

	// The nested address schema includes its own to-one back-reference,
	// resolved through the cycle as a forward reference.
	addresses, _ := schema.Field("addresses")
	nested := addresses.Type.Elem.Ref
	if nested == nil || nested.Name != "AddressDTO" {
		t.Fatalf("Expected resolved AddressDTO, got %+v", addresses.Type.Elem)
	}
	user, ok := nested.Field("user")
	if !ok {
		t.Fatalf("Expected back-reference field on AddressDTO")
	}
	if !user.Type.IsOptional() {
		t.Errorf("To-one relationship must be optional, got %s", user.Type)
	}
	if user.Type.Ref == nil || user.Type.Ref.Name != "UserDTO" {
		t.Errorf("Back-reference not resolved after rebuild: %+v", user.Type)
	}
}

func TestSelfReferentialEntity(t *testing.T) {
	reg := registryFor(t, `
entity Employee {
  id      Int        @id @default(autoincrement())
  name    String
  manager Employee?  @relation(backref: "reports")
  reports Employee[] @relation(backref: "manager")
}
`)

	schema, err := reg.Derive("Employee", Config{IncludeRelationships: true})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if err := schema.Rebuild(reg); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	manager, _ := schema.Field("manager")
	if manager.Type.Ref != schema {
		t.Errorf("Self-reference should resolve to the schema itself")
	}
	reports, _ := schema.Field("reports")
	if reports.Type.Kind != KindList || reports.Type.Elem.Ref != schema {
		t.Errorf("To-many self-reference not resolved: %+v", reports.Type)
	}

	// Linking both directions must not recurse.
	parent, err := schema.Conform(map[string]any{"name": "lead"})
	if err != nil {
		t.Fatalf("Conform failed: %v", err)
	}
	child, err := schema.Conform(map[string]any{"name": "report"})
	if err != nil {
		t.Fatalf("Conform failed: %v", err)
	}
	parent["reports"] = []any{child}
	child["manager"] = parent
	if parent["reports"].([]any)[0].(map[string]any)["manager"].(map[string]any)["name"] != "lead" {
		t.Errorf("Bidirectional links broken")
	}
}

func TestUnresolvedForwardReference(t *testing.T) {
	reg := registryFor(t, blogSchema)

	schema, err := reg.Derive("User", Config{IncludeRelationships: true, DeepRelationships: true, NameSuffix: "View"})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	// The nested address schema holds a forward reference back to UserView.
	// Rebuilding it against a registry that never derived UserView must fail
	// by name.
	addresses, _ := schema.Field("addresses")
	nested := addresses.Type.Elem.Ref
	if nested == nil {
		t.Fatalf("Expected concrete nested schema, got %+v", addresses.Type.Elem)
	}
	other := registryFor(t, userSchema)
	ferr := nested.Rebuild(other)
	if ferr == nil {
		t.Fatalf("Expected unresolved forward reference error")
	}
	if !strings.Contains(ferr.Error(), "unresolved forward reference") {
		t.Errorf("Unexpected rebuild error: %v", ferr)
	}
}

func TestModelNaming(t *testing.T) {
	reg := registryFor(t, userSchema)

	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{}, "UserDTO"},
		{Config{Name: "CustomUser"}, "CustomUser"},
		{Config{NamePrefix: "Api"}, "ApiUserDTO"},
		{Config{NameSuffix: "Model"}, "UserModel"},
		{Config{NamePrefix: "Api", NameSuffix: "View"}, "ApiUserView"},
	}
	for _, tc := range cases {
		schema, err := reg.Derive("User", tc.cfg)
		if err != nil {
			t.Fatalf("Derive failed: %v", err)
		}
		if schema.Name != tc.want {
			t.Errorf("Expected name %q, got %q", tc.want, schema.Name)
		}
	}
}

func TestBaseSchemaFields(t *testing.T) {
	reg := registryFor(t, userSchema)

	base := &Schema{
		Name: "AuditBase",
		Fields: []Field{
			{Name: "audit_tag", Type: Scalar(KindString), Default: StaticDefault("none")},
		},
	}
	schema, err := reg.Derive("User", Config{Base: base, Name: "AuditedUser"})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if schema.Fields[0].Name != "audit_tag" {
		t.Errorf("Base fields must come first, got %v", schema.FieldNames())
	}
	if len(schema.Fields) != 4 {
		t.Errorf("Expected base field plus 3 columns, got %v", schema.FieldNames())
	}
}

func TestComputedAndSynonymFields(t *testing.T) {
	reg := registryFor(t, `
entity User {
  id       Int    @id
  name     String
  fullname String?
  username String @synonym("name")
  display  String @computed("name || ' ' || fullname")
  misc     Any?   @computed("1")
}
`)

	schema, err := reg.Derive("User", Config{})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	names := schema.FieldNames()
	want := []string{"id", "name", "fullname", "display", "misc", "username"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}

	display, _ := schema.Field("display")
	if display.Type.Kind != KindString || !display.Default.IsRequired() {
		t.Errorf("Computed property should be a required string, got %s", display.Type)
	}

	misc, _ := schema.Field("misc")
	if misc.Type.Kind != KindAny || misc.Default.Mode != ModeNull {
		t.Errorf("Optional computed Any property mishandled: %s / %v", misc.Type, misc.Default.Mode)
	}

	username, _ := schema.Field("username")
	if username.Type.Kind != KindString || !username.Default.IsRequired() {
		t.Errorf("Synonym should mirror its column, got %s", username.Type)
	}
}

func TestDtoAnnotation(t *testing.T) {
	reg := registryFor(t, `
entity Money {
  id     Int    @id
  amount Decimal @dto("String")
}
`)

	schema, err := reg.Derive("Money", Config{})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	amount, _ := schema.Field("amount")
	if amount.Type.Kind != KindString {
		t.Errorf("@dto annotation should win over storage type, got %s", amount.Type)
	}
}

func TestEnumColumn(t *testing.T) {
	reg := registryFor(t, `
enum Role {
  USER
  ADMIN
}

entity Account {
  id   Int   @id
  role Role  @default("USER")
}
`)

	schema, err := reg.Derive("Account", Config{})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	role, _ := schema.Field("role")
	if role.Type.Kind != KindEnum || len(role.Type.Enum) != 2 {
		t.Errorf("Expected enum type with 2 values, got %+v", role.Type)
	}
	if role.Default.Mode != ModeStatic || role.Default.Value != "USER" {
		t.Errorf("Expected static enum default, got %+v", role.Default)
	}
}

func TestNoDoubleOptionalWrap(t *testing.T) {
	reg := registryFor(t, userSchema)

	schema, err := reg.Derive("User", Config{
		Mapped: map[string]Override{
			"fullname": TypeOverride(Scalar(KindString).AsOptional()),
		},
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	fullname, _ := schema.Field("fullname")
	if fullname.Type.String() != "String?" {
		t.Errorf("Optional wrapping stacked: %s", fullname.Type)
	}
}

func TestInheritedEntityDerivation(t *testing.T) {
	reg := registryFor(t, `
entity Person {
  id   Int    @id @default(autoincrement())
  name String
}

entity Employee extends Person {
  salary Float
}
`)

	schema, err := reg.Derive("Employee", Config{})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	names := schema.FieldNames()
	want := []string{"id", "name", "salary"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, names)
		}
	}
	if schema.Name != "EmployeeDTO" {
		t.Errorf("Expected EmployeeDTO, got %q", schema.Name)
	}
}
