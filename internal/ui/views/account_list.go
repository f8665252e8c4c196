package views

import (
	"fmt"

	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/model"
	"github.com/pterm/pterm"
)

type AccountListView struct{}

func NewAccountListView() *AccountListView {
	return &AccountListView{}
}

func (v *AccountListView) Render(c *model.Currency, accounts []*model.Account) error {
	if len(accounts) == 0 {
		pterm.Warning.Printf("No %s accounts tracked\n", c.Name)
		return nil
	}

	tableData := pterm.TableData{{"Address", "Handle", "Owner", "Balance", "Cursor"}}

	for _, acc := range accounts {
		balance := fmt.Sprintf("%s %s", currency.Format(c, acc.LastBalance), c.Name)

		coloredBalance := pterm.Gray(balance)
		if acc.LastBalance > 0 {
			coloredBalance = pterm.Green(balance)
		}
		tableData = append(tableData, []string{
			acc.Address,
			acc.Name,
			acc.OwnerGUID,
			coloredBalance,
			fmt.Sprintf("%d", acc.LastBlock),
		})
	}

	pterm.DefaultSection.Printf("%s Accounts", c.Name)
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))

	return nil
}
