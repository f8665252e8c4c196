package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hance08/walletsync/internal/breaker"
	"github.com/hance08/walletsync/internal/constants"
)

type Config struct {
	Database   DatabaseConfig        `mapstructure:"database"`
	Log        LogConfig             `mapstructure:"log"`
	Sweep      SweepConfig           `mapstructure:"sweep"`
	Notify     NotifyConfig          `mapstructure:"notify"`
	Ingest     IngestConfig          `mapstructure:"ingest"`
	Server     ServerConfig          `mapstructure:"server"`
	Nodes      map[string]NodeConfig `mapstructure:"nodes"`
	ConfigPath string                `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type SweepConfig struct {
	TimeoutSeconds  int `mapstructure:"timeout"`
	IntervalSeconds int `mapstructure:"interval"`
	TopWallets      int `mapstructure:"top_wallets"`
	Limit           int `mapstructure:"limit"`
	From            int `mapstructure:"from"`
	CheckLimit      int `mapstructure:"check_limit"`
}

func (s SweepConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (s SweepConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

type NotifyConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	APIKey         string        `mapstructure:"api_key"`
	QueueSize      int           `mapstructure:"queue_size"`
	TimeoutSeconds int           `mapstructure:"timeout"`
	Breaker        BreakerConfig `mapstructure:"breaker"`
	Kafka          KafkaConfig   `mapstructure:"kafka"`
}

type BreakerConfig struct {
	MaxFailures         int `mapstructure:"max_failures"`
	ResetTimeoutSeconds int `mapstructure:"reset_timeout"`
}

func (b BreakerConfig) Breaker() breaker.Config {
	return breaker.Config{
		MaxFailures:  b.MaxFailures,
		ResetTimeout: time.Duration(b.ResetTimeoutSeconds) * time.Second,
	}
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type IngestConfig struct {
	CreditAllOutputs bool `mapstructure:"credit_all_outputs"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// NodeConfig is the RPC endpoint of one currency daemon.
type NodeConfig struct {
	Host       string `mapstructure:"host"`
	User       string `mapstructure:"user"`
	Pass       string `mapstructure:"pass"`
	Network    string `mapstructure:"network"`
	DisableTLS bool   `mapstructure:"disable_tls"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxAgeDays: 28,
		},
		Sweep: SweepConfig{
			TimeoutSeconds:  50,
			IntervalSeconds: 60,
			TopWallets:      100,
			Limit:           10,
			From:            0,
			CheckLimit:      10,
		},
		Notify: NotifyConfig{
			QueueSize:      256,
			TimeoutSeconds: 15,
			Breaker:        BreakerConfig{MaxFailures: 5, ResetTimeoutSeconds: 30},
			Kafka:          KafkaConfig{Topic: "walletsync.deposits"},
		},
		Server: ServerConfig{Addr: ":8080"},
		Nodes:  map[string]NodeConfig{},
	}
}

// SetDefaults registers every default on v so that env overrides apply
// to keys missing from the config file.
func SetDefaults(v Setter) {
	d := NewDefault()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("sweep.timeout", d.Sweep.TimeoutSeconds)
	v.SetDefault("sweep.interval", d.Sweep.IntervalSeconds)
	v.SetDefault("sweep.top_wallets", d.Sweep.TopWallets)
	v.SetDefault("sweep.limit", d.Sweep.Limit)
	v.SetDefault("sweep.from", d.Sweep.From)
	v.SetDefault("sweep.check_limit", d.Sweep.CheckLimit)
	v.SetDefault("notify.endpoint", d.Notify.Endpoint)
	v.SetDefault("notify.api_key", d.Notify.APIKey)
	v.SetDefault("notify.queue_size", d.Notify.QueueSize)
	v.SetDefault("notify.timeout", d.Notify.TimeoutSeconds)
	v.SetDefault("notify.breaker.max_failures", d.Notify.Breaker.MaxFailures)
	v.SetDefault("notify.breaker.reset_timeout", d.Notify.Breaker.ResetTimeoutSeconds)
	v.SetDefault("notify.kafka.topic", d.Notify.Kafka.Topic)
	v.SetDefault("ingest.credit_all_outputs", d.Ingest.CreditAllOutputs)
	v.SetDefault("server.addr", d.Server.Addr)
}

// Setter is the part of *viper.Viper used by SetDefaults.
type Setter interface {
	SetDefault(key string, value any)
}

// EnvBinder is the part of *viper.Viper used by BindLegacyEnv.
type EnvBinder interface {
	BindEnv(input ...string) error
}

// BindLegacyEnv lets the environment names older deployments export stand in
// for the prefixed ones. The prefixed name wins when both are set.
func BindLegacyEnv(v EnvBinder) error {
	bindings := map[string]string{
		"sweep.timeout":   constants.EnvSweepTimeout,
		"notify.endpoint": constants.EnvNotifyURL,
		"notify.api_key":  constants.EnvAPIKey,
	}
	for key, legacy := range bindings {
		prefixed := constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return fmt.Errorf("failed to bind %s: %w", legacy, err)
		}
	}
	return nil
}
