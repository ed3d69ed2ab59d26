package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"finance-stress/internal/lever"
	"finance-stress/internal/model"
	"finance-stress/internal/scenario"
	"finance-stress/internal/simulate"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "scenarios":
		cmdScenarios()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --input household.json [--scenario job_loss] [--horizon 12] [--out results/ledger.csv]")
	fmt.Println("  cli scenarios")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate runs all default scenarios unless --scenario picks one")
	fmt.Println("  - --out writes a per-month cash-flow CSV and requires --scenario")
}

// household is the input JSON shape, matching the API's snapshot fields.
type household struct {
	MonthlyIncomeTakehome float64 `json:"monthly_income_takehome"`
	EmergencyFundBalance  float64 `json:"emergency_fund_balance"`
	EssentialTotal        float64 `json:"essential_total"`
	DiscretionaryTotal    float64 `json:"discretionary_total"`
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	inputPath := fs.String("input", "household.json", "Path to household JSON")
	kind := fs.String("scenario", "", "Scenario kind (default: all)")
	horizon := fs.Int("horizon", 12, "Months to simulate")
	outPath := fs.String("out", "", "Optional CSV ledger output path")
	_ = fs.Parse(args)

	if *outPath != "" && *kind == "" {
		fmt.Println("--out requires --scenario")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		panic(err)
	}
	var hh household
	if err := json.Unmarshal(raw, &hh); err != nil {
		panic(err)
	}

	state := model.FinancialState{
		MonthlyIncome:         hh.MonthlyIncomeTakehome,
		EmergencyFundBalance:  hh.EmergencyFundBalance,
		EssentialExpenses:     hh.EssentialTotal,
		DiscretionaryExpenses: hh.DiscretionaryTotal,
		HorizonMonths:         *horizon,
	}
	if err := state.Validate(); err != nil {
		panic(err)
	}

	kinds := []scenario.Kind{}
	if *kind != "" {
		kinds = append(kinds, scenario.Kind(*kind))
	} else {
		for _, def := range scenario.Definitions() {
			kinds = append(kinds, def.Kind)
		}
	}

	engine := simulate.New()
	for _, k := range kinds {
		resolved, err := scenario.Resolve(k, nil)
		if err != nil {
			panic(err)
		}
		def, _ := scenario.Lookup(k)

		result := engine.Run(state, resolved)
		risk := model.RiskLevel(result.RunwayMonths, state.TotalMonthlyExpenses())

		fmt.Printf("Scenario: %s (%s)\n", def.Name, k)
		fmt.Printf("  Runway: %.2f months (risk: %s)\n", result.RunwayMonths, risk)
		if result.BreachMonth != nil {
			fmt.Printf("  Breach month: %d\n", *result.BreachMonth)
		} else {
			fmt.Printf("  Breach month: none\n")
		}
		fmt.Printf("  Min balance: $%.2f  Ending balance: $%.2f\n", result.MinBalance, result.EndingBalance)

		levers := lever.Recommend(state, resolved, result.RunwayMonths)
		if len(levers) > 0 {
			fmt.Println("  Top levers:")
			for i, lv := range levers {
				fmt.Printf("    %d. %s (+%.2f months)\n", i+1, lv.Label, lv.DeltaMonths)
			}
		}
		fmt.Println()

		if *outPath != "" {
			if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
				panic(err)
			}
			rows := engine.Ledger(state, resolved)
			if err := simulate.WriteLedgerCSV(*outPath, rows); err != nil {
				panic(err)
			}
			fmt.Printf("Wrote %d rows to %s\n", len(rows), *outPath)
		}
	}
}

func cmdScenarios() {
	for _, def := range scenario.Definitions() {
		resolved := scenario.Resolved{Kind: def.Kind, Params: def.Defaults}
		fmt.Printf("%-20s %s\n", def.Kind, def.Name)
		fmt.Printf("%-20s   %s\n", "", def.Description)
		fmt.Printf("%-20s   defaults: %v\n", "", resolved.ParamsMap())
	}
}
