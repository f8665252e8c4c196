package account

import (
	"context"

	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/ui/prompts"
	"github.com/hance08/walletsync/internal/ui/views"
	"github.com/hance08/walletsync/internal/validation"
	"github.com/spf13/cobra"
)

type createFlags struct {
	GUID string
	Name string
}

type CreateCommandRunner struct {
	app      *app.App
	currency string
	flags    *createFlags
}

func NewCreateCmd(a *app.App) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create [currency]",
		Short: "Create a tracked account with a new node address.",
		Long: `Ask the node for a new address, then track it for the given owner.
Reconciliation of the new account starts at the current chain height.

Missing flags are asked for interactively.`,
		Example:      `  walletsync account create ltc --guid 7f3c1a8e-2b4d-4c6e-9a1f-0e2d3c4b5a69 --name user-42`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &CreateCommandRunner{app: a, flags: flags}
			if len(args) > 0 {
				runner.currency = args[0]
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.GUID, "guid", "g", "", "Owner GUID credited with deposits")
	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Node wallet account to create the address under")

	return cmd
}

func (r *CreateCommandRunner) Run(ctx context.Context) error {
	var err error
	if r.currency == "" {
		r.currency, err = prompts.PromptCurrency(r.app.Service.Registry.Names())
		if err != nil {
			return err
		}
	}
	adapter, err := r.app.Service.Registry.Get(r.currency)
	if err != nil {
		return err
	}

	details, err := prompts.PromptAccountDetails(
		prompts.AccountDetails{GUID: r.flags.GUID, Name: r.flags.Name},
		validation.ValidateGUID,
		validation.ValidateAccountName,
	)
	if err != nil {
		return err
	}
	if err := validation.ValidateGUID(details.GUID); err != nil {
		return err
	}
	if err := validation.ValidateAccountName(details.Name); err != nil {
		return err
	}

	if err := views.RenderAccountSummary(views.AccountSummaryItem{
		Currency: adapter.Name(),
		GUID:     details.GUID,
		Name:     details.Name,
	}); err != nil {
		return err
	}

	acc, err := r.app.Service.CreateAccount(ctx, adapter.Name(), details.GUID, details.Name)
	if err != nil {
		return err
	}
	return views.RenderAccountSuccess(adapter.Currency(), acc)
}
