package cmd

import (
	"context"
	"errors"

	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/service"
	"github.com/hance08/walletsync/internal/ui/views"
	"github.com/spf13/cobra"
)

type sweepFlags struct {
	Limit int
	From  int
}

type sweepRunner struct {
	app      *app.App
	currency string
	flags    *sweepFlags
}

func NewSweepCmd(a *app.App) *cobra.Command {
	flags := &sweepFlags{}

	cmd := &cobra.Command{
		Use:   "sweep [currency]",
		Short: "Run one time-boxed reconciliation pass over the top wallets",
		Long: `Walk the top wallets of a currency and record any transactions whose
balance changed on the node. The pass stops when sweep.timeout seconds
(FIXED_UPDATE_TIMEOUT) have elapsed; the next pass picks up from there.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := resolveCurrency(a, args)
			if err != nil {
				return err
			}
			runner := &sweepRunner{app: a, currency: name, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "Transactions fetched per account (default sweep.limit)")
	cmd.Flags().IntVarP(&flags.From, "from", "f", -1, "Transactions to skip per account (default sweep.from)")

	return cmd
}

func (r *sweepRunner) Run(ctx context.Context) error {
	filter := service.SweepFilter{Limit: r.app.Config.Sweep.Limit, From: r.app.Config.Sweep.From}
	if r.flags.Limit > 0 {
		filter.Limit = r.flags.Limit
	}
	if r.flags.From >= 0 {
		filter.From = r.flags.From
	}

	processed, err := r.app.Service.Sweep(ctx, r.currency, filter)
	if err != nil && !errors.Is(err, service.ErrSweepIncomplete) {
		return err
	}
	views.RenderSweepResult(r.currency, processed, err == nil)
	return nil
}
