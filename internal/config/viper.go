package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// viper keys
const (
	keyIdleThreshold  = "tracking.idle_threshold"
	keyMoveThrottle   = "tracking.move_throttle"
	keyFlushInterval  = "tracking.flush_interval"
	keyBatchSize      = "tracking.batch_size"
	keyStopTimeout    = "tracking.stop_timeout"
	keySessionMarkers = "tracking.session_markers"
	keySource         = "capture.source"
	keyReplayFile     = "capture.replay_file"
	keyWindowCmd      = "capture.window_cmd"
	keySyntheticRate  = "capture.synthetic_rate"
	keySyntheticSeed  = "capture.synthetic_seed"
	keyStoreDriver    = "store.driver"
	keyStorePath      = "store.path"
	keyLogFile        = "log.file"
	keyLogLevel       = "log.level"
	keyLogFormat      = "log.format"
	keyLogMaxSize     = "log.max_size"
	keyLogMaxBackups  = "log.max_backups"
)

const envPrefix = "PRESENCE"

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath, writing a file with the defaults if none exists.
// PRESENCE_* environment variables override file values, e.g.
// PRESENCE_TRACKING_IDLE_THRESHOLD=30s.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures defaults and environment overrides.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyIdleThreshold, "10s")
	v.SetDefault(keyMoveThrottle, "100ms")
	v.SetDefault(keyFlushInterval, "500ms")
	v.SetDefault(keyBatchSize, 100)
	v.SetDefault(keyStopTimeout, "2s")
	v.SetDefault(keySessionMarkers, true)
	v.SetDefault(keySource, SourceReplay)
	v.SetDefault(keyReplayFile, Stdin)
	v.SetDefault(keyWindowCmd, "")
	v.SetDefault(keySyntheticRate, "20ms")
	v.SetDefault(keySyntheticSeed, 0)
	v.SetDefault(keyStoreDriver, "bolt")
	v.SetDefault(keyStorePath, "")
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "json")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyLogMaxBackups, 3)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errDecodeConfig.Wrap(err)
	}

	return nil
}
