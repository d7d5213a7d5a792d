package dataset

import "github.com/rs/zerolog/log"

// Find returns the first item matching pred.
func Find[T any](items []T, pred func(T) bool) (T, bool) {
	for _, it := range items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Index resolves items by id. On duplicate ids the first item in
// collection order wins, same as a linear first-match scan.
type Index[T any] struct {
	items      []T
	byID       map[string]int
	duplicates int
}

// NewIndex builds an index over items using id to key them.
func NewIndex[T any](items []T, id func(T) string) *Index[T] {
	ix := &Index[T]{
		items: items,
		byID:  make(map[string]int, len(items)),
	}

	for i, it := range items {
		key := id(it)
		if _, ok := ix.byID[key]; ok {
			ix.duplicates++
			log.Trace().Str("id", key).Int("position", i).Msg("Duplicate id ignored by resolver")
			continue
		}
		ix.byID[key] = i
	}

	if ix.duplicates > 0 {
		log.Warn().Int("duplicates", ix.duplicates).Msg("Collection contains duplicate ids, first occurrence wins")
	}

	return ix
}

// SignIndex indexes signs by id.
func SignIndex(signs []Sign) *Index[Sign] {
	return NewIndex(signs, func(s Sign) string { return s.ID })
}

// TopologyIndex indexes topology segments by id.
func TopologyIndex(topology []Topology) *Index[Topology] {
	return NewIndex(topology, func(t Topology) string { return t.ID })
}

// Find returns the first item with the given id. An empty id never matches.
func (ix *Index[T]) Find(id string) (T, bool) {
	var zero T
	if id == "" {
		return zero, false
	}
	i, ok := ix.byID[id]
	if !ok {
		return zero, false
	}
	return ix.items[i], true
}

// Items returns the indexed collection in its original order.
func (ix *Index[T]) Items() []T {
	return ix.items
}

// Len returns the number of items, duplicates included.
func (ix *Index[T]) Len() int {
	return len(ix.items)
}

// Duplicates returns how many items were shadowed by an earlier id.
func (ix *Index[T]) Duplicates() int {
	return ix.duplicates
}
