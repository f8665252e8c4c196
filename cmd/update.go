package cmd

import (
	"context"

	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/service"
	"github.com/hance08/walletsync/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type updateFlags struct {
	Type  string
	Quiet bool
}

type updateRunner struct {
	app      *app.App
	currency string
	hash     string
	flags    *updateFlags
}

func NewUpdateCmd(a *app.App) *cobra.Command {
	flags := &updateFlags{}

	cmd := &cobra.Command{
		Use:   "update <currency> <hash>",
		Short: "Ingest a block or wallet transaction pushed by the node",
		Long: `Resolve the outputs of a block's transactions (--type block) or of one
wallet transaction (--type wallet) against the tracked addresses and record
the credits. Suitable for litecoind's -blocknotify and -walletnotify hooks.`,
		Example: `  # litecoin.conf
  walletnotify=walletsync update ltc --type wallet --quiet %s
  blocknotify=walletsync update ltc --type block --quiet %s`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &updateRunner{app: a, currency: args[0], hash: args[1], flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", service.EventWallet, "Event type: block or wallet")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Only log, print nothing")

	return cmd
}

func (r *updateRunner) Run(ctx context.Context) error {
	res, err := r.app.Service.Ingest(ctx, r.currency, service.Event{Type: r.flags.Type, Hash: r.hash})
	if err != nil && res.Transactions == 0 {
		return err
	}
	if err != nil {
		logx.Error("UPDATE", r.flags.Type, " ", r.hash, ": ", err)
		pterm.Warning.Println(err)
	}
	if r.flags.Quiet {
		return nil
	}
	return views.RenderIngestResult(res)
}
