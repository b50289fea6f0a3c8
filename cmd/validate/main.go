// Command validate checks a generation workbook before it is served: the
// header carries every required column, each row parses, (country, year)
// pairs are unique, values are in range and every G7 country is present.
//
// Usage:
//
//	go run ./cmd/validate -workbook data/World_Energy_Generation_DV_Project.xlsx
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/energy-dashboard-service/internal/adapter/excel"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func main() {
	workbook := flag.String("workbook", "", "path to the generation workbook")
	sheet := flag.String("sheet", "", "sheet name (default: first sheet)")
	flag.Parse()

	if *workbook == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*workbook, *sheet); code != 0 {
		os.Exit(code)
	}
}

func run(path, sheet string) int {
	fmt.Println("=== Generation Workbook Validation ===")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := excel.Open(path, sheet, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open workbook: %v\n", err)
		return 1
	}
	defer r.Close()

	rows, err := readAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read workbook: %v\n", err)
		return 1
	}

	recs, parsed := validateParse(rows)
	phases := []*phase{
		parsed,
		validateUnique(recs),
		validateRanges(recs),
		validateComponents(recs),
		validateG7(recs),
	}
	return report(os.Stdout, phases, len(rows), len(recs))
}

func readAll(r *excel.Reader) ([]domain.RawRow, error) {
	var all []domain.RawRow
	for {
		batch, err := r.ExtractBatch(context.Background(), 500)
		all = append(all, batch...)
		if errors.Is(err, io.EOF) {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func report(w io.Writer, phases []*phase, rows, parsed int) int {
	pass := text.Colors{text.FgGreen}
	fail := text.Colors{text.FgRed}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Phase", "Result"})
	allPassed := true
	for _, p := range phases {
		status := pass.Sprint("PASS")
		if !p.passed() {
			status = fail.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		t.AppendRow(table.Row{p.name, status})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	fmt.Fprintf(w, "\nRows: %d read, %d parsed\n", rows, parsed)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}
