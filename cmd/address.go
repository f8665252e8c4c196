package cmd

import (
	"context"

	"github.com/hance08/walletsync/internal/app"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type addressRunner struct {
	app      *app.App
	currency string
	account  string
}

func NewAddressCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "address <currency> [account]",
		Short: "Ask the node for a fresh receiving address",
		Long: `Ask the node for a new address under the given wallet account. The address
is not tracked; use 'account create' to register one for a user.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addressRunner{app: a, currency: args[0]}
			if len(args) > 1 {
				runner.account = args[1]
			}
			return runner.Run(cmd.Context())
		},
	}
}

func (r *addressRunner) Run(ctx context.Context) error {
	adapter, err := r.app.Service.Registry.Get(r.currency)
	if err != nil {
		return err
	}
	address, err := adapter.NewAddress(ctx, r.account)
	if err != nil {
		return err
	}
	pterm.Success.Printf("New %s address: %s\n", adapter.Name(), address)
	return nil
}
