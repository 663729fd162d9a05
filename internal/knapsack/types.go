package knapsack

// Table is a completed dynamic-programming value table of dimensions
// (n+1) x (capacity+1). Cell (i, r) holds the maximum total value achievable
// using only artifacts 1..i within weight budget r; row 0 and column 0 are
// always zero. A Table is read-only once built.
type Table struct {
	cells    [][]int
	n        int
	capacity int
}

// At returns the value of cell (i, r).
func (t Table) At(i, r int) int {
	return t.cells[i][r]
}

// Items returns n, the number of artifacts the table was built for.
func (t Table) Items() int {
	return t.n
}

// Capacity returns the weight capacity the table was built for.
func (t Table) Capacity() int {
	return t.capacity
}

// OptimalValue returns the bottom-right cell: the maximum total value
// achievable using all artifacts within the full capacity.
func (t Table) OptimalValue() int {
	return t.cells[t.n][t.capacity]
}

// Cells returns the total number of cells in the table.
func (t Table) Cells() int {
	return (t.n + 1) * (t.capacity + 1)
}

// Solution represents one optimal artifact selection. Items holds 1-based
// artifact indices in ascending order; TotalValue equals the table's
// bottom-right cell and TotalWeight never exceeds the capacity.
type Solution struct {
	Items       []int
	TotalValue  int
	TotalWeight int
}

// Summary aggregates the display statistics derived from a solution.
// Callers that only need the raw selection can ignore it.
type Summary struct {
	PossibleSubsets uint64
	TableRows       int
	TableCols       int
	TableCells      int
	SelectedCount   int
	TotalWeight     int
	TotalValue      int
	Capacity        int
	UtilizationPct  float64
}

// Solver describes the behaviour required from a knapsack solver.
type Solver interface {
	Solve(values, weights []int, capacity int) (Solution, error)
}
