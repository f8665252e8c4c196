package views

import (
	"fmt"

	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/ui"
	"github.com/pterm/pterm"
)

type AccountSummaryItem struct {
	Currency string
	GUID     string
	Name     string
}

func RenderAccountSummary(data AccountSummaryItem) error {
	ui.Separator()

	name := data.Name
	if name == "" {
		name = "None"
	}

	tableData := pterm.TableData{
		{pterm.Blue("Currency"), data.Currency},
		{pterm.Blue("Owner GUID"), data.GUID},
		{pterm.Blue("Node Account"), name},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

func RenderAccountSuccess(c *model.Currency, acc *model.Account) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), fmt.Sprintf("%d", acc.ID)},
		{pterm.Blue("Address"), acc.Address},
		{pterm.Blue("Balance"), currency.Format(c, acc.LastBalance)},
		{pterm.Blue("Start Block"), fmt.Sprintf("%d", acc.LastBlock)},
	}

	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Print("Account created successfully!\n")

	return nil
}
