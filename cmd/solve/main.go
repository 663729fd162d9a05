package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"

	"github.com/eugenenazirov/exhibit-optimizer/internal/config"
	"github.com/eugenenazirov/exhibit-optimizer/internal/knapsack"
)

func main() {
	kingpinApp := kingpin.New("solve", "Solves an artifact catalog once and prints the selection report")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	valuesStr := kingpinApp.Flag("values", "Comma-separated artifact values").String()
	weightsStr := kingpinApp.Flag("weights", "Comma-separated artifact weights").String()
	capacityFlag := kingpinApp.Flag("capacity", "Hall weight capacity").Default("-1").Int()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}
	if *valuesStr != "" {
		overrides.ValuesStr = valuesStr
	}
	if *weightsStr != "" {
		overrides.WeightsStr = weightsStr
	}
	if *capacityFlag >= 0 {
		overrides.Capacity = capacityFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		kingpinApp.Fatalf("failed to load configuration: %v", err)
	}

	cat := cfg.InitialCatalog
	sol, err := knapsack.New().Solve(cat.Values(), cat.Weights(), cat.Capacity)
	if err != nil {
		kingpinApp.Fatalf("failed to solve catalog: %v", err)
	}

	sum := knapsack.Summarize(sol, len(cat.Artifacts), cat.Capacity)
	printReport(os.Stdout, sum, sol.Items)
}

// printReport writes the selection statistics in the order the service has
// always reported them: search-space size, table size, the subset itself, and
// the weight/value totals.
func printReport(w io.Writer, sum knapsack.Summary, items []int) {
	fmt.Fprintf(w, "Total possible subsets: %s\n", humanize.Comma(int64(sum.PossibleSubsets)))
	fmt.Fprintf(w, "Value table size: %d x %d (%s cells)\n", sum.TableRows, sum.TableCols, humanize.Comma(int64(sum.TableCells)))
	fmt.Fprintf(w, "Artifacts in optimal subset: %d\n", sum.SelectedCount)
	fmt.Fprintf(w, "Selected artifacts: %v\n", items)
	if sum.Capacity > 0 {
		fmt.Fprintf(w, "Total weight: %d / %d (%.1f%% of capacity)\n", sum.TotalWeight, sum.Capacity, sum.UtilizationPct)
	} else {
		fmt.Fprintf(w, "Total weight: %d / %d (utilization n/a)\n", sum.TotalWeight, sum.Capacity)
	}
	fmt.Fprintf(w, "Total value: %d\n", sum.TotalValue)
}
