package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/walletsync/cmd/account"
	"github.com/hance08/walletsync/cmd/transaction"
	"github.com/hance08/walletsync/internal/app"
	"github.com/hance08/walletsync/internal/config"
	"github.com/hance08/walletsync/internal/constants"
	"github.com/hance08/walletsync/internal/errhandler"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	// commands hold the pointer; it is filled once flags are parsed
	application := new(app.App)
	var cleanup func()

	rootCmd := &cobra.Command{
		Use:           "walletsync",
		Short:         "walletsync reconciles wallet deposits against blockchain nodes",
		Long:          `walletsync keeps a ledger of wallet deposits in sync with the currency nodes and notifies the wallet API of new credits.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			if err := initLogging(cmd.Name() == "serve"); err != nil {
				return err
			}

			a, c, err := app.NewApp(cfg, migrations)
			if err != nil {
				return err
			}
			*application = *a
			cleanup = c
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(account.NewAccountCmd(application))
	rootCmd.AddCommand(transaction.NewTransactionCmd(application))

	rootCmd.AddCommand(NewCheckCmd(application))
	rootCmd.AddCommand(NewSweepCmd(application))
	rootCmd.AddCommand(NewUpdateCmd(application))
	rootCmd.AddCommand(NewStatusCmd(application))
	rootCmd.AddCommand(NewInfoCmd(application))
	rootCmd.AddCommand(NewAddressCmd(application))
	rootCmd.AddCommand(NewSendCmd(application))
	rootCmd.AddCommand(NewServeCmd(application))

	err := rootCmd.Execute()
	if cleanup != nil {
		cleanup()
	}
	_ = logx.Close()
	errhandler.HandleError(err)
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName(constants.ConfigFile)
		viper.SetConfigType("yaml")
	}

	config.SetDefaults(viper.GetViper())

	if cfgFile == "" {
		if err := createDefaultConfig(); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override
	if err := config.BindLegacyEnv(viper.GetViper()); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

func initLogging(console bool) error {
	file := cfg.Log.File
	if file == "" {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return err
		}
		file = filepath.Join(appDir, "logs", constants.AppName+".log")
	}

	file, err := expandPath(file)
	if err != nil {
		return err
	}

	return logx.Init(logx.Options{
		File:       file,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Console:    console,
	})
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}

func createDefaultConfig() error {
	appDir, err := app.GetAppDataDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, constants.ConfigFile+".yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// resolveCurrency returns args[0] or asks when the command was run
// without one.
func resolveCurrency(a *app.App, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return prompts.PromptCurrency(a.Service.Registry.Names())
}
