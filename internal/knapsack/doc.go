// Package knapsack implements the 0/1 knapsack solver used by the exhibit
// optimizer: a bottom-up dynamic-programming table over artifact values and
// weights, and a backtracking pass that recovers the selected artifacts from
// the completed table. Both passes are pure functions over their inputs.
package knapsack
