package wizard

import (
	"fmt"

	"github.com/nfrund/safeonboard/internal/domain"
)

// Selection is an ordered set of option labels. It is immutable: Toggle
// returns a new Selection, so copies of FormData can share one safely.
// The zero value is an empty selection.
type Selection struct {
	values []string
	index  map[string]int
}

// NewSelection builds a selection in the given order, dropping duplicates.
func NewSelection(values ...string) Selection {
	var s Selection
	for _, v := range values {
		if s.Contains(v) {
			continue
		}
		s = s.add(v)
	}
	return s
}

// Contains reports whether v is selected.
func (s Selection) Contains(v string) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of selected values.
func (s Selection) Len() int { return len(s.values) }

// Values returns the selected values in insertion order.
func (s Selection) Values() []string {
	if len(s.values) == 0 {
		return nil
	}
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Toggle removes v if present, keeping the order of the rest, and appends
// it otherwise.
func (s Selection) Toggle(v string) Selection {
	if pos, ok := s.index[v]; ok {
		return s.remove(pos)
	}
	return s.add(v)
}

func (s Selection) add(v string) Selection {
	values := make([]string, len(s.values), len(s.values)+1)
	copy(values, s.values)
	values = append(values, v)

	index := make(map[string]int, len(values))
	for k, pos := range s.index {
		index[k] = pos
	}
	index[v] = len(values) - 1
	return Selection{values: values, index: index}
}

func (s Selection) remove(pos int) Selection {
	if len(s.values) == 1 {
		return Selection{}
	}
	values := make([]string, 0, len(s.values)-1)
	values = append(values, s.values[:pos]...)
	values = append(values, s.values[pos+1:]...)

	index := make(map[string]int, len(values))
	for i, v := range values {
		index[v] = i
	}
	return Selection{values: values, index: index}
}

// Toggle flips membership of value in a multi-select field and returns the
// updated copy of d. Only set-valued fields accept toggles.
func (d FormData) Toggle(f Field, value string) (FormData, error) {
	acc, ok := fields[f]
	if !ok {
		return d, fmt.Errorf("%w: %q", domain.ErrUnknownField, f)
	}
	if acc.kind != KindSet {
		return d, fmt.Errorf("%w: %s", domain.ErrNotMultiSelect, f)
	}
	sel := acc.set(&d)
	*sel = sel.Toggle(value)
	return d, nil
}
