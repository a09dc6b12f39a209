package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/vitae/internal/fields"
)

// reorder applies a caller-supplied id sequence to current. Under the
// strict policy anything but a permutation is rejected and reported as
// changed=false. Under the trust policy the sequence is taken as given;
// unknown and repeated ids are dropped and rows the caller left out keep
// their relative order after the listed ones, since a store write must
// not lose rows.
func reorder[T fields.Keyed[T]](engine *fields.Engine[T], current []T, ids []string, log zerolog.Logger) ([]T, bool) {
	next, err := engine.Reorder(current, fields.ByKeys(current, ids))
	if errors.Is(err, fields.ErrNotPermutation) {
		log.Warn().Strs("ids", ids).Msg("reorder rejected: not a permutation of the current list")
		return current, false
	}
	return completeOrder(current, next), true
}

func completeOrder[T fields.Keyed[T]](current, next []T) []T {
	seen := make(map[string]bool, len(current))
	out := make([]T, 0, len(current))
	for _, it := range next {
		if !seen[it.Key()] {
			seen[it.Key()] = true
			out = append(out, it)
		}
	}
	for _, it := range current {
		if !seen[it.Key()] {
			out = append(out, it)
		}
	}
	return out
}
