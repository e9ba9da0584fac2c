// Package relsync reconciles the edges of a many-to-many relation for one
// owning entity against a desired set of related ids, writing only the
// difference.
package relsync

import "context"

// JoinStore exposes the join rows of a single owning entity.
type JoinStore[K comparable] interface {
	// Related returns the ids currently joined to the owner.
	Related(ctx context.Context) ([]K, error)
	Link(ctx context.Context, ids []K) error
	Unlink(ctx context.Context, ids []K) error
}

// Diff is the set of writes needed to turn the existing edges into the target.
type Diff[K comparable] struct {
	Add    []K
	Remove []K
}

// Empty reports whether the diff requires no writes.
func (d Diff[K]) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0
}

// Unique returns ids without duplicates, keeping first-seen order.
func Unique[K comparable](ids []K) []K {
	seen := make(map[K]struct{}, len(ids))
	out := make([]K, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Plan computes the edges to add and remove. Duplicates in either input collapse.
func Plan[K comparable](existing, target []K) Diff[K] {
	want := make(map[K]struct{}, len(target))
	for _, id := range target {
		want[id] = struct{}{}
	}
	have := make(map[K]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
	}

	var d Diff[K]
	for _, id := range Unique(target) {
		if _, ok := have[id]; !ok {
			d.Add = append(d.Add, id)
		}
	}
	for _, id := range Unique(existing) {
		if _, ok := want[id]; !ok {
			d.Remove = append(d.Remove, id)
		}
	}
	return d
}

// Sync makes the owner's edges equal to target. Edges already present are not
// touched, so repeating a Sync with the same target writes nothing. Callers
// wanting atomicity with other updates pass a store bound to their transaction.
func Sync[K comparable](ctx context.Context, store JoinStore[K], target []K) (Diff[K], error) {
	existing, err := store.Related(ctx)
	if err != nil {
		return Diff[K]{}, err
	}
	d := Plan(existing, target)
	if len(d.Add) > 0 {
		if err := store.Link(ctx, d.Add); err != nil {
			return Diff[K]{}, err
		}
	}
	if len(d.Remove) > 0 {
		if err := store.Unlink(ctx, d.Remove); err != nil {
			return Diff[K]{}, err
		}
	}
	return d, nil
}
