package cmd

import (
	"context"

	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/service"
	"github.com/hance08/walletsync/internal/ui/views"
	"github.com/spf13/cobra"
)

type statusRunner struct {
	app  *app.App
	args []string
}

func NewStatusCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "status [currency]",
		Short: "Show whether the currency nodes are reachable",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &statusRunner{app: a, args: args}
			return runner.Run(cmd.Context())
		},
	}
}

func (r *statusRunner) Run(ctx context.Context) error {
	if len(r.args) == 0 {
		return views.RenderStatus(r.app.Service.StatusAll(ctx))
	}

	report, err := r.app.Service.Status(ctx, r.args[0])
	if err != nil {
		return err
	}
	return views.RenderStatus([]service.StatusReport{report})
}
