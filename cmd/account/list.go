package account

import (
	"context"
	"fmt"

	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/ui/views"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Top int
}

type ListCommandRunner struct {
	app      *app.App
	currency string
	flags    *listFlags
}

func NewListCmd(a *app.App) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list <currency>",
		Short: "List tracked accounts with their cached balances",
		Long: `List the tracked accounts of a currency with the balance and block
cursor recorded by the last reconciliation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				app:      a,
				currency: args[0],
				flags:    flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&flags.Top, "top", "t", 0, "Only show the N accounts a sweep would visit first")

	return cmd
}

func (r *ListCommandRunner) Run(ctx context.Context) error {
	adapter, err := r.app.Service.Registry.Get(r.currency)
	if err != nil {
		return err
	}

	accounts, err := r.app.Service.Account.ListAccounts(ctx, r.currency)
	if r.flags.Top > 0 {
		accounts, err = r.app.Store.GetTopWallets(ctx, adapter.Currency().ID, r.flags.Top)
	}
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	return views.NewAccountListView().Render(adapter.Currency(), accounts)
}
