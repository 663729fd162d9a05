package knapsack

import "errors"

var (
	// ErrInvalidInput is returned when the value/weight sequences or the
	// capacity violate the solver preconditions. No partial table is produced.
	ErrInvalidInput = errors.New("values and weights must be equal-length sequences of non-negative integers with non-negative capacity")
)
