package filter

import (
	"sort"
	"strings"
)

type predicate[E any] func(E) bool

// Apply filters entities by criteria and orders the survivors by spec.
// The input slice is never mutated; the result is always a fresh slice
// (empty, not nil, when nothing matches).
func Apply[E any](s Schema[E], entities []E, c Criteria, spec *SortSpec) []E {
	preds := buildPredicates(s, c)

	out := make([]E, 0, len(entities))
	for _, e := range entities {
		if matchesAll(e, preds) {
			out = append(out, e)
		}
	}

	if spec != nil && spec.Field != "" {
		sortEntities(s, out, *spec)
	}
	return out
}

func matchesAll[E any](e E, preds []predicate[E]) bool {
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}
	return true
}

func buildPredicates[E any](s Schema[E], c Criteria) []predicate[E] {
	var preds []predicate[E]

	if term := strings.ToLower(strings.TrimSpace(c.Search)); term != "" {
		fields := s.Searchable
		preds = append(preds, func(e E) bool {
			for _, f := range fields {
				v := s.value(f, e)
				if v.Valid && strings.Contains(strings.ToLower(v.Str), term) {
					return true
				}
			}
			return false
		})
	}

	for field, values := range c.Terms {
		if len(values) == 0 {
			continue
		}
		field, values := field, values
		preds = append(preds, func(e E) bool {
			v := s.value(field, e)
			if !v.Valid {
				return false
			}
			for _, want := range values {
				if v.Str == want {
					return true
				}
			}
			return false
		})
	}

	for field, r := range c.Ranges {
		// A range spanning the field's full domain selects everything;
		// skip it so missing values are not excluded.
		if domain, ok := s.Domains[field]; ok && r.Covers(domain) {
			continue
		}
		field, r := field, r
		preds = append(preds, func(e E) bool {
			v := s.value(field, e)
			if !v.Valid {
				return false
			}
			return r.Contains(v.Num)
		})
	}

	return preds
}

// sortEntities sorts in place with a stable sort so equal keys keep
// their pre-sort relative order in both directions.
func sortEntities[E any](s Schema[E], entities []E, spec SortSpec) {
	acc, ok := s.Fields[spec.Field]
	if !ok {
		return
	}
	less := func(i, j int) bool {
		cmp := compareValues(acc(entities[i]), acc(entities[j]))
		if spec.Descending {
			return cmp > 0
		}
		return cmp < 0
	}
	sort.SliceStable(entities, less)
}

func compareValues(a, b Value) int {
	switch {
	case a.Kind == KindNumber && b.Kind == KindNumber:
		an, bn := a.Num, b.Num
		if !a.Valid {
			an = 0
		}
		if !b.Valid {
			bn = 0
		}
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	default:
		as, bs := a.Str, b.Str
		if !a.Valid {
			as = ""
		}
		if !b.Valid {
			bs = ""
		}
		return strings.Compare(as, bs)
	}
}
