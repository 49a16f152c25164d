package todo

import (
	"sort"
	"strconv"
)

// List is the in-memory todo list backed by a Store.
type List struct {
	store *Store
	items []Item
}

// Open loads the list through store.
func Open(store *Store) (*List, error) {
	items, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &List{store: store, items: items}, nil
}

// Items returns a copy of the items in display order.
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Add appends one open item per content string, in order, and saves.
// An empty contents slice is a no-op and does not touch the file.
func (l *List) Add(contents []string) error {
	if len(contents) == 0 {
		return nil
	}

	next := make([]Item, len(l.items), len(l.items)+len(contents))
	copy(next, l.items)
	for _, c := range contents {
		next = append(next, NewItem(c))
	}
	return l.commit(next)
}

// Done marks the items at the given 1-based positions finished and saves.
// All indices are validated first; on error nothing changes.
func (l *List) Done(args []string) error {
	positions, err := ParseIndices(args, len(l.items))
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return nil
	}

	next := l.Items()
	for _, pos := range positions {
		next[pos].State = StateFinished
	}
	return l.commit(next)
}

// Remove deletes the items at the given 1-based positions and saves.
// All indices are validated first; on error nothing changes.
func (l *List) Remove(args []string) error {
	positions, err := ParseIndices(args, len(l.items))
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return nil
	}

	// Highest first, so pending positions never shift.
	sort.Ints(positions)
	next := l.Items()
	for i := len(positions) - 1; i >= 0; i-- {
		pos := positions[i]
		next = append(next[:pos], next[pos+1:]...)
	}
	return l.commit(next)
}

// MarkDone marks the single item at 1-based pos finished and saves.
func (l *List) MarkDone(pos int) error {
	return l.Done([]string{strconv.Itoa(pos)})
}

// RemoveAt removes the single item at 1-based pos and saves.
func (l *List) RemoveAt(pos int) error {
	return l.Remove([]string{strconv.Itoa(pos)})
}

// commit persists next and only then swaps it in, so a failed save leaves
// the in-memory list matching the file.
func (l *List) commit(next []Item) error {
	if err := l.store.Save(next); err != nil {
		return err
	}
	l.items = next
	return nil
}

// ParseIndices converts 1-based index strings into validated 0-based
// positions for a list of length n. Duplicates are dropped; the remaining
// positions keep their input order.
func ParseIndices(args []string, n int) ([]int, error) {
	seen := make(map[int]bool, len(args))
	positions := make([]int, 0, len(args))
	for _, arg := range args {
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return nil, &ParseError{Input: arg, Err: errNotInteger(err)}
		}
		if idx < 1 || idx > n {
			return nil, &IndexError{Index: idx, Len: n}
		}
		pos := idx - 1
		if seen[pos] {
			continue
		}
		seen[pos] = true
		positions = append(positions, pos)
	}
	return positions, nil
}

func errNotInteger(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
