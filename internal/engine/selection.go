package engine

import "github.com/samber/lo"

// SelectionKind tags the shape of a Selection.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectSingle
	SelectMultiple
	SelectAll
)

func (k SelectionKind) String() string {
	switch k {
	case SelectSingle:
		return "single"
	case SelectMultiple:
		return "multiple"
	case SelectAll:
		return "all"
	default:
		return "none"
	}
}

// Selection is None, Single(id), Multiple(ids) or All. The zero value is None.
type Selection struct {
	kind SelectionKind
	ids  []string
}

func NoSelection() Selection { return Selection{} }

func SingleSelection(id string) Selection {
	return Selection{kind: SelectSingle, ids: []string{id}}
}

// MultipleSelection keeps the order given; the first id drives group
// transforms. Duplicates are dropped, and zero or one id collapses to the
// matching simpler shape.
func MultipleSelection(ids ...string) Selection {
	ids = lo.Uniq(lo.Compact(ids))
	switch len(ids) {
	case 0:
		return NoSelection()
	case 1:
		return SingleSelection(ids[0])
	}
	return Selection{kind: SelectMultiple, ids: ids}
}

func AllSelection() Selection { return Selection{kind: SelectAll} }

func (s Selection) Kind() SelectionKind { return s.kind }

func (s Selection) IsEmpty() bool { return s.kind == SelectNone }

// IDs returns the explicit ids, nil for None and All.
func (s Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Resolve returns the ids the selection names that still exist in parts, in
// selection order (scene order for All).
func (s Selection) Resolve(parts []Part) []string {
	exists := func(id string) bool {
		return lo.ContainsBy(parts, func(p Part) bool { return p.ID == id })
	}
	switch s.kind {
	case SelectNone:
		return nil
	case SelectSingle, SelectMultiple:
		return lo.Filter(s.ids, func(id string, _ int) bool { return exists(id) })
	case SelectAll:
		return lo.Map(parts, func(p Part, _ int) string { return p.ID })
	}
	return nil
}

// Without drops removed ids. A selection that loses any member collapses to
// None, and All never survives a removal.
func (s Selection) Without(removed []string) Selection {
	if len(removed) == 0 {
		return s
	}
	switch s.kind {
	case SelectNone:
		return s
	case SelectSingle, SelectMultiple:
		if len(lo.Intersect(s.ids, removed)) == 0 {
			return s
		}
	}
	return NoSelection()
}
