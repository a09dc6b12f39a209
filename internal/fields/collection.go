package fields

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Keyed is an element of an ordered collection: it has a stable key and can
// produce a deep copy of itself under a new key.
type Keyed[T any] interface {
	Key() string
	WithKey(id string) T
}

// IDGenerator produces identifiers unique for the lifetime of a document.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function into an IDGenerator.
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// UUIDGenerator issues random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.New().String() }

// ReorderPolicy decides what Reorder does with a sequence that is not a
// permutation of the current items.
type ReorderPolicy string

const (
	// ReorderStrict rejects sequences whose key set differs from the
	// current one.
	ReorderStrict ReorderPolicy = "strict"
	// ReorderTrust commits the caller's sequence as-is.
	ReorderTrust ReorderPolicy = "trust"
)

// ParseReorderPolicy maps a config string to a policy. Empty means strict.
func ParseReorderPolicy(s string) (ReorderPolicy, error) {
	switch ReorderPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ReorderStrict:
		return ReorderStrict, nil
	case ReorderTrust:
		return ReorderTrust, nil
	}
	return "", fmt.Errorf("unknown reorder policy %q (want strict or trust)", s)
}

// ErrNotPermutation is returned by Reorder under ReorderStrict.
var ErrNotPermutation = errors.New("sequence is not a permutation of the current items")

// Engine applies insert/update/remove/reorder/duplicate to ordered
// sequences. Every operation returns a fresh slice and leaves its input
// untouched, so a caller commits the whole result in one write.
type Engine[T Keyed[T]] struct {
	ids    IDGenerator
	policy ReorderPolicy
}

// NewEngine creates an Engine. A nil generator falls back to UUIDs.
func NewEngine[T Keyed[T]](ids IDGenerator, policy ReorderPolicy) *Engine[T] {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if policy == "" {
		policy = ReorderStrict
	}
	return &Engine[T]{ids: ids, policy: policy}
}

// Policy returns the reorder policy in effect.
func (e *Engine[T]) Policy() ReorderPolicy { return e.policy }

// Insert appends item under a freshly generated key and returns the new
// sequence together with the stored element.
func (e *Engine[T]) Insert(items []T, item T) ([]T, T) {
	stored := item.WithKey(e.freshKey(items))
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, stored)
	return out, stored
}

// Update replaces the element keyed id with patch(element). An unknown id
// returns items unchanged and false. The key survives the patch.
func (e *Engine[T]) Update(items []T, id string, patch func(T) T) ([]T, bool) {
	idx := IndexOf(items, id)
	if idx < 0 {
		return items, false
	}
	patched := patch(items[idx])
	if patched.Key() != id {
		patched = patched.WithKey(id)
	}
	out := slices.Clone(items)
	out[idx] = patched
	return out, true
}

// Remove drops the element keyed id. An unknown id returns items
// unchanged and false.
func (e *Engine[T]) Remove(items []T, id string) ([]T, bool) {
	idx := IndexOf(items, id)
	if idx < 0 {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return out, true
}

// Reorder replaces the order with next. Under ReorderStrict next must hold
// exactly the keys of items; otherwise items is returned with
// ErrNotPermutation.
func (e *Engine[T]) Reorder(items, next []T) ([]T, error) {
	if e.policy == ReorderStrict && !SameKeys(items, next) {
		return items, ErrNotPermutation
	}
	return slices.Clone(next), nil
}

// Duplicate inserts a deep copy of the element keyed id right after it,
// under a new key.
func (e *Engine[T]) Duplicate(items []T, id string) ([]T, T, bool) {
	var zero T
	idx := IndexOf(items, id)
	if idx < 0 {
		return items, zero, false
	}
	dup := items[idx].WithKey(e.freshKey(items))
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:idx+1]...)
	out = append(out, dup)
	out = append(out, items[idx+1:]...)
	return out, dup, true
}

// Move shifts the element keyed id by delta positions, clamped to the
// sequence bounds. It goes through Reorder so the same policy applies.
func (e *Engine[T]) Move(items []T, id string, delta int) ([]T, bool) {
	idx := IndexOf(items, id)
	if idx < 0 {
		return items, false
	}
	target := min(max(idx+delta, 0), len(items)-1)
	if target == idx {
		return items, false
	}
	next := slices.Clone(items)
	elem := next[idx]
	next = slices.Delete(next, idx, idx+1)
	next = slices.Insert(next, target, elem)
	out, err := e.Reorder(items, next)
	if err != nil {
		return items, false
	}
	return out, true
}

// ByKeys returns the elements of items in the order given by keys,
// skipping keys that match nothing. Used to turn an id permutation from the
// UI into a sequence for Reorder.
func ByKeys[T Keyed[T]](items []T, keys []string) []T {
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		if idx := IndexOf(items, k); idx >= 0 {
			out = append(out, items[idx])
		}
	}
	return out
}

// IndexOf returns the position of the element keyed id, or -1.
func IndexOf[T Keyed[T]](items []T, id string) int {
	return slices.IndexFunc(items, func(it T) bool { return it.Key() == id })
}

// Keys lists the keys of items in order.
func Keys[T Keyed[T]](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}

// SameKeys reports whether a and b hold the same keys, each exactly once.
func SameKeys[T Keyed[T]](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, it := range a {
		seen[it.Key()]++
	}
	for _, it := range b {
		k := it.Key()
		if seen[k] == 0 {
			return false
		}
		seen[k]--
	}
	return true
}

func (e *Engine[T]) freshKey(items []T) string {
	for {
		id := e.ids.NewID()
		if id != "" && IndexOf(items, id) < 0 {
			return id
		}
	}
}
