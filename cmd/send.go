package cmd

import (
	"context"

	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/ui/prompts"
	"github.com/hance08/walletsync/internal/ui/views"
	"github.com/hance08/walletsync/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type sendFlags struct {
	Yes bool
}

type sendRunner struct {
	app      *app.App
	currency string
	address  string
	amount   string
	flags    *sendFlags
}

func NewSendCmd(a *app.App) *cobra.Command {
	flags := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send <currency> [address] [amount]",
		Short: "Send funds from the node wallet",
		Long: `Send an amount, given in whole units (e.g. 0.05), from the node's wallet
to an address. Missing arguments are asked for interactively. Asks for
confirmation unless --yes is set.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &sendRunner{app: a, currency: args[0], flags: flags}
			if len(args) > 1 {
				runner.address = args[1]
			}
			if len(args) > 2 {
				runner.amount = args[2]
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (r *sendRunner) Run(ctx context.Context) error {
	adapter, err := r.app.Service.Registry.Get(r.currency)
	if err != nil {
		return err
	}
	c := adapter.Currency()
	validate := validation.AmountValidator(c)

	if r.address == "" {
		r.address, err = prompts.PromptAddress("Destination address:", nil)
		if err != nil {
			return err
		}
	}
	if r.amount == "" {
		r.amount, err = prompts.PromptAmount("Amount:", "Whole units, e.g. 0.05", validate)
		if err != nil {
			return err
		}
	}
	if err := validate(r.amount); err != nil {
		return err
	}
	minor, err := currency.ParseMajor(c, r.amount)
	if err != nil {
		return err
	}

	views.RenderSendSummary(views.SendSummaryItem{Currency: c, Address: r.address, Amount: minor})

	if !r.flags.Yes {
		ok, err := prompts.PromptConfirm("Send now?", false)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Warning.Println("Operation Cancelled")
			return nil
		}
	}

	txID, err := adapter.Send(ctx, r.address, minor)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Sent in transaction %s\n", txID)
	return nil
}
