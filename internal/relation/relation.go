// Package relation filters a full entity list down to the members of an id set.
package relation

import "context"

// Resolve returns the elements of universe whose key is in ids, in universe
// order. Ids with no match are dropped. Lookup goes through a map index so
// the cost is linear in len(ids)+len(universe).
func Resolve[T any](ids []int64, universe []T, key func(T) int64) []T {
	if len(ids) == 0 || len(universe) == 0 {
		return nil
	}
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]T, 0, min(len(ids), len(universe)))
	for _, item := range universe {
		if _, ok := wanted[key(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}

// ResolveFetched is Resolve with a lazily fetched universe. fetch is not
// called when ids is empty.
func ResolveFetched[T any](ctx context.Context, ids []int64, fetch func(context.Context) ([]T, error), key func(T) int64) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	universe, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(ids, universe, key), nil
}

// Loop returns items followed by a second copy, for seamless carousel looping.
func Loop[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	out := make([]T, 0, 2*len(items))
	out = append(out, items...)
	return append(out, items...)
}
