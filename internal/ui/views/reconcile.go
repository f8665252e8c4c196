package views

import (
	"fmt"

	"github.com/hance08/walletsync/internal/service"
	"github.com/hance08/walletsync/internal/ui"
	"github.com/pterm/pterm"
)

func RenderCheckResult(address string, res service.CheckResult) {
	if res.Updated == 0 {
		pterm.Info.Printf("%s is up to date (%d records touched)\n", address, res.Total)
		return
	}
	pterm.Success.Printf("%s: %d new credits, %d records touched\n", address, res.Updated, res.Total)
}

func RenderSweepResult(currencyName string, processed int, complete bool) {
	ui.Banner(currencyName, "sweep")
	if !complete {
		pterm.Warning.Printf("%s sweep hit its deadline after %d accounts\n", currencyName, processed)
		return
	}
	pterm.Success.Printf("%s sweep processed %d accounts\n", currencyName, processed)
}

func RenderIngestResult(res service.IngestResult) error {
	ui.Subtitle("Ingest summary")
	tableData := pterm.TableData{
		{"Transactions", fmt.Sprintf("%d", res.Transactions)},
		{"Credited", pterm.Green(fmt.Sprintf("%d", res.Credited))},
		{"New", pterm.Green(fmt.Sprintf("%d", res.New))},
		{"Unmatched", fmt.Sprintf("%d", res.Unmatched)},
		{"Skipped", fmt.Sprintf("%d", res.Skipped)},
		{"Failed", pterm.Red(fmt.Sprintf("%d", res.Failed))},
	}
	return pterm.DefaultTable.WithData(tableData).Render()
}
