package memory

import "sort"

// Map iteration order is random; listings sort by id so callers (and the CSV
// export) see a stable order.
func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}
