// Package query implements the generic filter, sort, and pagination engine
// shared by every list endpoint.
//
// The pipeline is always filter, then sort, then page: totalCount reflects
// the size after filtering but before paging, and an out-of-range offset
// yields an empty page rather than an error.
package query

import "sort"

// DefaultFirst is the page size used when the caller does not supply one.
const DefaultFirst = 20

// Connector is the paginated list response shape of the external protocol.
type Connector[T any] struct {
	Typename   string `json:"__typename,omitempty"`
	TotalCount int    `json:"totalCount"`
	Nodes      []T    `json:"nodes"`
}

// Page selects a window of the filtered, sorted sequence.
type Page struct {
	Offset int `json:"offset"`
	First  int `json:"first"`
}

// Sort names an external sort-key token and a direction.
type Sort struct {
	Key  string `json:"key"`
	Desc bool   `json:"desc"`
}

// KeyFunc extracts the attribute a sort token compares by.
type KeyFunc[T any] func(T) any

// SortMap maps external sort-key tokens to attribute accessors for one entity
// type. Unrecognized tokens fall back to Default; the engine never fails on a
// bad token.
type SortMap[T any] struct {
	Default string
	Keys    map[string]KeyFunc[T]
}

// Resolve returns the accessor for token, falling back to the default key.
func (m SortMap[T]) Resolve(token string) KeyFunc[T] {
	if fn, ok := m.Keys[token]; ok {
		return fn
	}
	return m.Keys[m.Default]
}

// Filter returns the elements of items matching pred, preserving order.
// A nil pred keeps everything.
func Filter[T any](items []T, pred func(T) bool) []T {
	if pred == nil {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// SortBy sorts items in place by the given accessor. The sort is stable, so
// elements that compare equal keep their relative insertion order, ascending
// or descending.
func SortBy[T any](items []T, key KeyFunc[T], desc bool) {
	if key == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		c := Compare(key(items[i]), key(items[j]))
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// Paginate slices items to [offset, offset+first). A first of zero or less
// uses DefaultFirst; offsets beyond the end yield an empty slice.
func Paginate[T any](items []T, page Page) []T {
	first := page.First
	if first <= 0 {
		first = DefaultFirst
	}
	start := page.Offset
	if start < 0 {
		start = 0
	}
	if start > len(items) {
		start = len(items)
	}
	end := start + first
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// SelectPage runs the full pipeline: filter, sort by the resolved key, page,
// and wrap in a Connector whose TotalCount is the filtered size.
func SelectPage[T any](items []T, pred func(T) bool, sortMap SortMap[T], s *Sort, page Page) Connector[T] {
	filtered := Filter(items, pred)

	token, desc := sortMap.Default, false
	if s != nil {
		token, desc = s.Key, s.Desc
	}
	SortBy(filtered, sortMap.Resolve(token), desc)

	return Connector[T]{
		TotalCount: len(filtered),
		Nodes:      Paginate(filtered, page),
	}
}
