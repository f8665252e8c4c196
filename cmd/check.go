package cmd

import (
	"context"

	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/ui/views"
	"github.com/spf13/cobra"
)

type checkRunner struct {
	app      *app.App
	currency string
	address  string
}

func NewCheckCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <currency> <address>",
		Short: "Reconcile one tracked address against its node",
		Long: `Fetch the address's recent wallet transactions from the node, record
every credit the ledger has not seen yet and notify the wallet API about them.`,
		Example: `  walletsync check ltc LZ1m1rXw7JX5xK6Vk6qX3vFfQkqfEw3hAs`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &checkRunner{app: a, currency: args[0], address: args[1]}
			return runner.Run(cmd.Context())
		},
	}
}

func (r *checkRunner) Run(ctx context.Context) error {
	res, err := r.app.Service.CheckAddress(ctx, r.currency, r.address)
	if err != nil {
		return err
	}
	views.RenderCheckResult(r.address, res)
	return nil
}
