package knapsack

import (
	"fmt"
	"math"
	"slices"
)

type dpSolver struct{}

// New creates a Solver based on the dynamic-programming table.
func New() Solver {
	return &dpSolver{}
}

func (s *dpSolver) Solve(values, weights []int, capacity int) (Solution, error) {
	return Solve(values, weights, capacity)
}

// BuildTable constructs the DP value table for the given artifacts. Inputs are
// 0-indexed parallel slices: artifact i (1-based) has value values[i-1] and
// weight weights[i-1]. The slices must be equal length with non-negative
// entries and capacity must be non-negative; violations return an error
// wrapping ErrInvalidInput.
func BuildTable(values, weights []int, capacity int) (Table, error) {
	if err := validateInput(values, weights, capacity); err != nil {
		return Table{}, err
	}

	n := len(values)
	cells := make([][]int, n+1)
	for i := range cells {
		cells[i] = make([]int, capacity+1)
	}

	for i := 1; i <= n; i++ {
		v, w := values[i-1], weights[i-1]
		for r := 1; r <= capacity; r++ {
			if w > r {
				cells[i][r] = cells[i-1][r]
				continue
			}
			skip := cells[i-1][r]
			take := cells[i-1][r-w] + v
			if skip >= take {
				cells[i][r] = skip
			} else {
				cells[i][r] = take
			}
		}
	}

	return Table{cells: cells, n: n, capacity: capacity}, nil
}

// Reconstruct backtracks over a completed table and returns the 1-based
// indices of one optimal artifact subset, in ascending order. When taking an
// artifact and skipping it yield the same value the artifact is treated as
// not taken, so every table maps to exactly one canonical subset.
func Reconstruct(t Table, weights []int) ([]int, error) {
	if len(weights) != t.n {
		return nil, fmt.Errorf("%w: table was built for %d artifacts, got %d weights", ErrInvalidInput, t.n, len(weights))
	}

	items := make([]int, 0, t.n)
	r := t.capacity
	for i := t.n; i >= 1; i-- {
		if t.cells[i][r] == t.cells[i-1][r] {
			continue
		}
		items = append(items, i)
		r -= weights[i-1]
	}
	slices.Reverse(items)

	return items, nil
}

// Solve builds the table, reconstructs the optimal subset, and returns the
// combined Solution.
func Solve(values, weights []int, capacity int) (Solution, error) {
	table, err := BuildTable(values, weights, capacity)
	if err != nil {
		return Solution{}, err
	}

	items, err := Reconstruct(table, weights)
	if err != nil {
		return Solution{}, err
	}

	totalWeight := 0
	for _, i := range items {
		totalWeight += weights[i-1]
	}

	return Solution{
		Items:       items,
		TotalValue:  table.OptimalValue(),
		TotalWeight: totalWeight,
	}, nil
}

// Summarize derives the display statistics for a solved catalog of n
// artifacts under the given capacity.
func Summarize(sol Solution, n, capacity int) Summary {
	s := Summary{
		TableRows:     n + 1,
		TableCols:     capacity + 1,
		TableCells:    (n + 1) * (capacity + 1),
		SelectedCount: len(sol.Items),
		TotalWeight:   sol.TotalWeight,
		TotalValue:    sol.TotalValue,
		Capacity:      capacity,
	}

	// saturates for n >= 64
	if n < 64 {
		s.PossibleSubsets = 1 << uint(n)
	} else {
		s.PossibleSubsets = math.MaxUint64
	}

	if capacity > 0 {
		s.UtilizationPct = float64(sol.TotalWeight) / float64(capacity) * 100
	}

	return s
}

func validateInput(values, weights []int, capacity int) error {
	if len(values) != len(weights) {
		return fmt.Errorf("%w: got %d values and %d weights", ErrInvalidInput, len(values), len(weights))
	}
	if capacity < 0 {
		return fmt.Errorf("%w: capacity %d", ErrInvalidInput, capacity)
	}
	for i := range values {
		if values[i] < 0 {
			return fmt.Errorf("%w: artifact %d has value %d", ErrInvalidInput, i+1, values[i])
		}
		if weights[i] < 0 {
			return fmt.Errorf("%w: artifact %d has weight %d", ErrInvalidInput, i+1, weights[i])
		}
	}
	return nil
}
