package transaction

import (
	"github.com/hance08/walletsync/internal/app"
	"github.com/spf13/cobra"
)

func NewTransactionCmd(a *app.App) *cobra.Command {
	transactionCmd := &cobra.Command{
		Use:   "transaction",
		Short: "Inspect recorded credits",
		Long:  "Inspect the credits the ledger has recorded for tracked addresses.",
	}

	transactionCmd.AddCommand(NewListCmd(a))

	return transactionCmd
}
