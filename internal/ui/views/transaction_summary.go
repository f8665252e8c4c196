package views

import (
	"fmt"

	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/model"
	"github.com/pterm/pterm"
)

type SendSummaryItem struct {
	Currency *model.Currency
	Address  string
	Amount   int64
}

func RenderSendSummary(data SendSummaryItem) {
	pterm.DefaultSection.Println("Send Summary")

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Destination", data.Address},
		{"Amount", fmt.Sprintf("%s %s", currency.Format(data.Currency, data.Amount), data.Currency.Name)},
		{"Minor Units", fmt.Sprintf("%d", data.Amount)},
	}

	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
