// Command gendata writes a synthetic but well-formed generation workbook with
// every dataset column, for local runs and tests. Output is deterministic for
// a given seed.
//
// Usage:
//
//	go run ./cmd/gendata -out data/World_Energy_Generation_DV_Project.xlsx \
//	  -from 1990 -to 2021 -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/energy-dashboard-service/internal/adapter/excel"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "World_Energy_Generation_DV_Project.xlsx", "output workbook path")
	sheet := flag.String("sheet", "Sheet1", "sheet name")
	from := flag.Int("from", 1990, "first year (inclusive)")
	to := flag.Int("to", 2021, "last year (inclusive)")
	seed := flag.Uint64("seed", 1, "random seed")
	missing := flag.Float64("missing-rate", 0.02, "fraction of numeric cells left empty")
	flag.Parse()

	if *from > *to {
		flag.Usage()
		return fmt.Errorf("-from %d is after -to %d", *from, *to)
	}
	if *missing < 0 || *missing >= 1 {
		return fmt.Errorf("-missing-rate must be in [0, 1)")
	}

	recs := generate(*from, *to, *seed, *missing)
	if err := excel.SaveRecords(*out, *sheet, recs); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("%s (%d-%d)", *out, *from, *to)
	t.AppendHeader(table.Row{"Continent", "Countries", "Rows", "Renewables (TWh)", "Fossil (TWh)"})
	var rows, countries int
	for _, s := range summarize(recs) {
		t.AppendRow(table.Row{s.continent, s.countries, s.rows, fmt.Sprintf("%.2f", s.renewables), fmt.Sprintf("%.2f", s.fossil)})
		rows += s.rows
		countries += s.countries
	}
	t.AppendFooter(table.Row{"Total", countries, rows, "", ""})
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}
