package randmod

import (
	"math/rand/v2"

	"github.com/tsegab/tlang/diag"
)

// --- rand module ---

type Rand struct{}

func (*Rand) Int(args []any) (any, error) {
	lo, hi := args[0].(int), args[1].(int)
	if lo > hi {
		return nil, diag.Runtimef(diag.IndexOutOfRange, "randint: empty range [%d, %d]", lo, hi)
	}
	// The span is computed in uint64 so ranges wider than MaxInt stay exact;
	// it wraps to zero only for the full int64 range.
	span := uint64(hi) - uint64(lo) + 1
	if span == 0 {
		return int(rand.Uint64()), nil
	}
	return lo + int(rand.Uint64N(span)), nil
}

func (*Rand) Float([]any) (any, error) {
	return rand.Float64(), nil
}
