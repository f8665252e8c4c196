package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hance08/walletsync/internal/api"
	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/service"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type serveFlags struct {
	Addr    string
	NoSweep bool
}

type serveRunner struct {
	app   *app.App
	flags *serveFlags
}

func NewServeCmd(a *app.App) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run periodic sweeps",
		Long: `Start the HTTP API used by node notify hooks and the wallet backend, and
sweep every configured currency each sweep.interval seconds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &serveRunner{app: a, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", "", "Listen address (default server.addr)")
	cmd.Flags().BoolVar(&flags.NoSweep, "no-sweep", false, "Disable the periodic sweeps")

	return cmd
}

func (r *serveRunner) Run(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := r.app.Config
	addr := cfg.Server.Addr
	if r.flags.Addr != "" {
		addr = r.flags.Addr
	}
	filter := service.SweepFilter{Limit: cfg.Sweep.Limit, From: cfg.Sweep.From}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(r.app.Service, filter, r.app.Metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	if !r.flags.NoSweep {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.app.Service.RunSweeps(ctx, cfg.Sweep.Interval(), filter)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info("SERVE", "listening on ", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	pterm.Info.Printf("Listening on %s\n", addr)

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Warn("SERVE", "shutdown: ", err)
	}
	wg.Wait()

	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	logx.Info("SERVE", "stopped")
	return nil
}
