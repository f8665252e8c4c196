package cmd

import (
	"os"
	"path/filepath"

	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/constants"
	"github.com/hance08/walletsync/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: a,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	configPath := r.app.Config.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	rawDBPath := r.app.Config.Database.Path
	if rawDBPath == "" {
		rawDBPath = filepath.Join(getAppDataDirOrUnknown(), constants.DBFile)
	}
	expandedDBPath, _ := expandPath(rawDBPath)

	dbExists := false
	if _, err := os.Stat(expandedDBPath); err == nil {
		dbExists = true
	}

	items := views.SystemInfoItem{
		ConfigPath:     configPath,
		DBPath:         expandedDBPath,
		DBExists:       dbExists,
		AppDataDir:     getAppDataDirOrUnknown(),
		NotifyEndpoint: r.app.Config.Notify.Endpoint,
	}

	if err := views.RenderSystemInfo(items); err != nil {
		return err
	}
	return nil
}

func getAppDataDirOrUnknown() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
