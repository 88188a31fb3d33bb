package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"saas_pnl/pkg/core/assumption"
	"saas_pnl/pkg/core/config"
	"saas_pnl/pkg/core/projection"
	"saas_pnl/pkg/core/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "JSON assumptions overlay")
	file := flag.String("file", cfg.ScenarioFile, "Scenario file (json, yaml or hjson)")
	format := flag.String("format", "pretty", "Output: pretty, markdown, html, csv or json")
	goal := flag.Float64("goal", cfg.ARRGoal, "Year-3 ARR goal")
	locale := flag.String("locale", cfg.Locale, "Locale for number formatting")
	flag.Parse()

	a, err := loadAssumptions(*file, *dataStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "check":
		if !runChecks(os.Stdout, a) {
			os.Exit(2)
		}
	case "calculate":
		if err := runCalculations(os.Stdout, a, *format, *goal, *locale); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

// loadAssumptions starts from defaults, overlays the scenario file, then the -data payload.
func loadAssumptions(file, data string) (projection.Assumptions, error) {
	a := assumption.Default()
	if file != "" {
		loaded, err := assumption.LoadFile(file)
		if err != nil {
			return a, err
		}
		a = loaded
	}
	if data != "" {
		doc, err := assumption.Parse([]byte(data), assumption.FormatJSON)
		if err != nil {
			return a, err
		}
		a = doc.Apply(a)
	}
	return a, nil
}

func runChecks(w io.Writer, a projection.Assumptions) bool {
	err := assumption.Validate(a)
	if err == nil {
		fmt.Fprintln(w, "Success: all assumptions within range")
		return true
	}

	var verr *assumption.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "Error: %d assumption(s) out of range\n", len(verr.Violations))
	for _, v := range verr.Violations {
		fmt.Fprintf(w, "  - %s\n", v)
	}
	return false
}

func runCalculations(w io.Writer, a projection.Assumptions, format string, goal float64, locale string) error {
	rep := report.Build(a, goal)
	f := report.NewFormatter(locale)

	switch format {
	case "pretty":
		printPretty(w, rep, f)
		return nil
	case "markdown", "md":
		_, err := io.WriteString(w, rep.Markdown(f))
		return err
	case "html":
		page, err := rep.HTML(f)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	case "csv":
		return report.WriteCSV(w, rep.Months)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printPretty(w io.Writer, rep *report.Report, f *report.Formatter) {
	h := rep.Headline
	ue := rep.UnitEconomics

	fmt.Fprintf(w, "Run %s\n\n", rep.RunID)
	fmt.Fprintf(w, "Year 3 ARR:        %s (%s of %s goal)\n", f.YenMillions(h.Year3ARR, 1), f.Percent(h.GoalAttainmentPct), f.YenMillions(h.ARRGoal, 0))
	fmt.Fprintf(w, "Final MRR:         %s\n", f.YenMillions(h.FinalMRR, 2))
	fmt.Fprintf(w, "Active customers:  %s\n", f.Number(h.FinalActiveCustomers, 0))
	fmt.Fprintf(w, "Operating margin:  %s\n", f.Percent(h.FinalOperatingMargin))
	fmt.Fprintf(w, "Blended ACV:       %s\n", f.Yen(ue.BlendedACV))
	fmt.Fprintf(w, "CAC / LTV:         %s / %s (LTV:CAC %s)\n\n", f.Yen(ue.CAC), f.Yen(ue.LTV), f.Number(ue.LTVToCAC, 1))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tNew\tCustomers\tARR (¥M)\tRevenue (¥M)\tCosts (¥M)\tOp. Profit (¥M)\tOp. Margin\tTeam\t")
	for _, y := range rep.Annual {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			y.Year,
			f.Number(y.NewCustomers, 0),
			f.Number(y.ActiveCustomers, 0),
			f.Millions(y.ARR, 1),
			f.Millions(y.TotalRevenue, 1),
			f.Millions(y.TotalCosts, 1),
			f.Millions(y.OperatingProfit, 1),
			f.Percent(y.OperatingMargin),
			f.Number(y.TeamSize, 0),
		)
	}
	tw.Flush()
}
