package filter

// Value is one entity field as seen by predicates and comparators.
// Missing fields are represented with Valid=false and compare as the
// zero of their kind.
type Value struct {
	Kind  Kind
	Str   string
	Num   float64
	Valid bool
}

// Kind discriminates how a Value filters and compares.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

// String builds a string field value.
func String(s string) Value { return Value{Kind: KindString, Str: s, Valid: true} }

// Number builds a numeric field value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n, Valid: true} }

// Missing builds an absent value of the given kind.
func Missing(k Kind) Value { return Value{Kind: k} }

// Accessor extracts one named field from an entity.
type Accessor[E any] func(E) Value

// Schema describes how one entity type is filtered and sorted.
type Schema[E any] struct {
	// Fields maps field names to accessors.
	Fields map[string]Accessor[E]
	// Searchable lists the fields free-text search ORs across.
	Searchable []string
	// Domains declares the full value domain for each range-filterable
	// field. A criteria range covering the domain is a no-op.
	Domains map[string]Range
}

func (s Schema[E]) value(field string, e E) Value {
	acc, ok := s.Fields[field]
	if !ok {
		return Value{}
	}
	return acc(e)
}
