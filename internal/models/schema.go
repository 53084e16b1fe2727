package models

// Kind is the wire type a field accepts.
type Kind string

const (
	KindString  Kind = "string"
	KindDecimal Kind = "decimal"
	KindBool    Kind = "bool"
)

// Messages are the failure texts reported for a field.
type Messages struct {
	Required string
	Kind     string
	Positive string
	Range    string
}

// Field describes one caller-visible column of a table.
type Field struct {
	Name      string
	Column    string
	Kind      Kind
	Required  bool
	Positive  bool
	Size      int
	Precision int
	Scale     int
	Default   any
	OnCreate  bool // accepted from callers on create
	OnUpdate  bool // accepted from callers on full update
	Example   any
	Messages  Messages
}

// Schema is an ordered description of a table's caller-visible fields.
// The store, the validation rules and the API docs are all derived from it.
type Schema struct {
	Table      string
	PrimaryKey string
	Fields     []Field
}

// Columns returns the table columns of every field, in schema order.
func (s Schema) Columns() []string {
	cols := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

// CreateFields returns the fields a caller supplies on create.
func (s Schema) CreateFields() []Field {
	return s.filter(func(f Field) bool { return f.OnCreate })
}

// UpdateFields returns the fields a caller supplies on full update.
func (s Schema) UpdateFields() []Field {
	return s.filter(func(f Field) bool { return f.OnUpdate })
}

// Field returns the field called name, or the zero Field if there is none.
func (s Schema) Field(name string) Field {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return Field{}
}

func (s Schema) filter(keep func(Field) bool) []Field {
	var out []Field
	for _, f := range s.Fields {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// DefaultInvalidValue is reported when a rule has no specific message.
const DefaultInvalidValue = "Invalid value"

// ProductSchema describes the products table.
var ProductSchema = Schema{
	Table:      "products",
	PrimaryKey: "id",
	Fields: []Field{
		{
			Name:     "name",
			Column:   "name",
			Kind:     KindString,
			Required: true,
			Size:     100,
			OnCreate: true,
			OnUpdate: true,
			Example:  "Zapato",
			Messages: Messages{Required: "El nombre de producto no puede ir vacio"},
		},
		{
			Name:      "price",
			Column:    "price",
			Kind:      KindDecimal,
			Required:  true,
			Positive:  true,
			Precision: 10,
			Scale:     2,
			OnCreate:  true,
			OnUpdate:  true,
			Example:   199.99,
			Messages: Messages{
				Kind:     "valor no valido",
				Required: DefaultInvalidValue,
				Positive: "Precio no valido",
				Range:    "Precio no valido",
			},
		},
		{
			Name:     "availability",
			Column:   "availability",
			Kind:     KindBool,
			Default:  true,
			OnUpdate: true,
			Example:  true,
			Messages: Messages{Kind: "Valor para disponibilidad no valido"},
		},
	},
}
