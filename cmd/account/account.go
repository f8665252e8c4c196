package account

import (
	"github.com/hance08/walletsync/internal/app"
	"github.com/spf13/cobra"
)

func NewAccountCmd(a *app.App) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Create tracked wallet accounts and list them.",
		Long:  `Create tracked wallet accounts and list them.`,
	}

	accountCmd.AddCommand(NewCreateCmd(a))
	accountCmd.AddCommand(NewListCmd(a))

	return accountCmd
}
