package transaction

import (
	"context"

	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/ui/views"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Limit int
}

type listRunner struct {
	app      *app.App
	currency string
	address  string
	flags    *listFlags
}

func NewListCmd(a *app.App) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list <currency> <address>",
		Aliases: []string{"ls", "l"},
		Short:   "List recorded credits of an address",
		Long: `List the newest credits recorded for a tracked address, with block height,
confirmations and amount.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				app:      a,
				currency: args[0],
				address:  args[1],
				flags:    flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 20, "Maximum number of transactions to display")

	return cmd
}

func (r *listRunner) Run(ctx context.Context) error {
	adapter, err := r.app.Service.Registry.Get(r.currency)
	if err != nil {
		return err
	}

	records, err := r.app.Service.Account.ListTransactions(ctx, r.currency, r.address, r.flags.Limit)
	if err != nil {
		return err
	}

	return views.NewTransactionListView().Render(adapter.Currency(), r.address, records, r.flags.Limit)
}
