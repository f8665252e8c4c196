package app

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hance08/walletsync/internal/breaker"
	"github.com/hance08/walletsync/internal/config"
	"github.com/hance08/walletsync/internal/constants"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/metrics"
	"github.com/hance08/walletsync/internal/node/litecoin"
	"github.com/hance08/walletsync/internal/notify"
	"github.com/hance08/walletsync/internal/service"
	"github.com/hance08/walletsync/internal/store"
)

const defaultLitecoinHost = "127.0.0.1:9332"

type App struct {
	Config   *config.Config
	Service  *service.Service
	Store    store.Repository
	Metrics  *metrics.Metrics
	Notifier *notify.Dispatcher
}

// NewApp opens the ledger, connects the node clients and builds the
// currency adapters. The returned cleanup flushes pending notifications
// before closing the database.
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	dbPathRaw := cfg.Database.Path

	if dbPathRaw == "" {
		appDir, err := GetAppDataDir()
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(appDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dbPathRaw = filepath.Join(appDir, constants.DBFile)
	}

	dbStore, err := store.NewStore(dbPathRaw, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m := metrics.New()
	dispatcher := notify.NewDispatcher(notify.Options{
		QueueSize:   cfg.Notify.QueueSize,
		SendTimeout: time.Duration(cfg.Notify.TimeoutSeconds) * time.Second,
		Metrics:     m,
	}, buildSinks(cfg)...)

	ltcNode := nodeConfig(cfg, service.LitecoinName)
	ltcClient, err := litecoin.NewClient(litecoin.Config{
		Host:       ltcNode.Host,
		User:       ltcNode.User,
		Pass:       ltcNode.Pass,
		Network:    ltcNode.Network,
		DisableTLS: ltcNode.DisableTLS,
	})
	if err != nil {
		dispatcher.Close()
		_ = dbStore.Close()
		return nil, nil, err
	}

	cleanup := func() {
		dispatcher.Close()
		ltcClient.Close()
		if err := dbStore.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	ctx := context.Background()
	ltcAdapter, err := service.NewLitecoinAdapter(ctx, dbStore, ltcClient, service.AdapterOptions{
		CheckLimit:       cfg.Sweep.CheckLimit,
		TopWallets:       cfg.Sweep.TopWallets,
		SweepTimeout:     cfg.Sweep.Timeout(),
		CreditAllOutputs: cfg.Ingest.CreditAllOutputs,
		Notifier:         dispatcher,
		Metrics:          m,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	xrpAdapter, err := service.NewRippleAdapter(ctx, dbStore)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	svc := service.NewService(dbStore, service.NewRegistry(ltcAdapter, xrpAdapter))

	return &App{
		Config:   cfg,
		Service:  svc,
		Store:    dbStore,
		Metrics:  m,
		Notifier: dispatcher,
	}, cleanup, nil
}

func buildSinks(cfg *config.Config) []notify.Sink {
	var sinks []notify.Sink
	if cfg.Notify.Endpoint != "" {
		client := breaker.NewHTTPClient("webhook", cfg.Notify.Breaker.Breaker(), &http.Client{
			Timeout: time.Duration(cfg.Notify.TimeoutSeconds) * time.Second,
		})
		sinks = append(sinks, notify.NewWebhookSink(cfg.Notify.Endpoint, cfg.Notify.APIKey, client))
	} else {
		logx.Warn("APP", "notify.endpoint is empty, webhook notifications disabled")
	}
	if len(cfg.Notify.Kafka.Brokers) > 0 {
		sinks = append(sinks, notify.NewKafkaSink(cfg.Notify.Kafka.Brokers, cfg.Notify.Kafka.Topic))
	}
	return sinks
}

func nodeConfig(cfg *config.Config, name string) config.NodeConfig {
	n := cfg.Nodes[name]
	if n.Host == "" {
		n.Host = defaultLitecoinHost
		n.DisableTLS = true
	}
	return n
}

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+constants.AppName), nil
	}

	return filepath.Join(configDir, constants.AppName), nil
}
