package views

import (
	"fmt"

	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/store"
	"github.com/pterm/pterm"
)

type TransactionListView struct{}

func NewTransactionListView() *TransactionListView {
	return &TransactionListView{}
}

func (v *TransactionListView) Render(c *model.Currency, address string, records []*store.TransactionRecord, limit int) error {
	if len(records) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Credits to %s (limit: %d)", address, limit)

	tableData := pterm.TableData{
		{"TxID", "Block", "Confirmations", "Amount", "Seen"},
	}

	for _, rec := range records {
		confirmations := fmt.Sprintf("%d", rec.Confirmations)
		if rec.Confirmations == 0 {
			confirmations = pterm.Yellow("pending")
		}
		tableData = append(tableData, []string{
			shortHash(rec.TxID),
			fmt.Sprintf("%d", rec.BlockIndex),
			confirmations,
			pterm.Green(currency.Format(c, rec.Amount)),
			rec.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func shortHash(h string) string {
	if len(h) <= 16 {
		return h
	}
	return h[:8] + "…" + h[len(h)-8:]
}
