package constants

const (
	AppName    = "walletsync"
	DBFile     = "walletsync.db"
	ConfigFile = "config"
	EnvPrefix  = "WALLETSYNC"
)

// Environment names kept from the deployments that predate the config file.
const (
	EnvSweepTimeout = "FIXED_UPDATE_TIMEOUT"
	EnvNotifyURL    = "IWALLET_API"
	EnvAPIKey       = "API_KEY"
)

const (
	MaxNameLen = 100
	MaxGUIDLen = 64
)
