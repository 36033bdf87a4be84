// Package filter derives ordered views from in-memory entity lists.
//
// Apply is pure: it never mutates its input, never performs I/O, and
// never errors on irregular data. Missing fields fail active range
// predicates and sort as empty/zero.
package filter

// Range is an inclusive numeric bound pair.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range (inclusive).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Covers reports whether r spans the whole of other.
func (r Range) Covers(other Range) bool {
	return r.Min <= other.Min && r.Max >= other.Max
}

// Criteria is the set of active filter dimensions for one view.
// A zero-value dimension is inactive and matches everything. Distinct
// dimensions combine with AND; values within Terms combine with OR.
type Criteria struct {
	// Search is matched case-insensitively as a substring against the
	// schema's searchable fields.
	Search string
	// Terms maps a categorical field to its selected values.
	Terms map[string][]string
	// Ranges maps a numeric field to an inclusive bound pair. A range
	// covering the field's declared domain is treated as inactive.
	Ranges map[string]Range
}

// WithTerm returns a copy of c with the given categorical selection added.
func (c Criteria) WithTerm(field string, values ...string) Criteria {
	terms := make(map[string][]string, len(c.Terms)+1)
	for k, v := range c.Terms {
		terms[k] = v
	}
	terms[field] = values
	c.Terms = terms
	return c
}

// WithRange returns a copy of c with the given numeric range set.
func (c Criteria) WithRange(field string, min, max float64) Criteria {
	ranges := make(map[string]Range, len(c.Ranges)+1)
	for k, v := range c.Ranges {
		ranges[k] = v
	}
	ranges[field] = Range{Min: min, Max: max}
	c.Ranges = ranges
	return c
}

// SortSpec selects the sort field and direction. A nil SortSpec preserves
// input order.
type SortSpec struct {
	Field      string
	Descending bool
}
