package cmd

import (
	"os"

	"github.com/DigitPaint/sneakpeek-cli/pkg/dlogger"
	"github.com/DigitPaint/sneakpeek-cli/pkg/model"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	envPrefix     = "sneakpeek"
	envConfigFile = "SNEAKPEEK_CONFIG"

	keyAPIURL = "api_url"
	keyAPIKey = "api_key"
)

// CLIConfig describes the CLI configuration, from environment and config file.
type CLIConfig struct {
	APIURL string `mapstructure:"api_url" json:"api_url" yaml:"api_url"` // SNEAKPEEK_API_URL
	APIKey string `mapstructure:"api_key" json:"-" yaml:"api_key"`       // SNEAKPEEK_API_KEY

	configFile string
	logger     *zap.Logger
}

// newConfig reads settings by increasing order of precedence: defaults, config file, environment
func newConfig(v *viper.Viper) (*CLIConfig, error) {
	v.SetDefault(keyAPIURL, model.DefaultAPIURL)
	v.SetDefault(keyAPIKey, "")

	if file := os.Getenv(envConfigFile); file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.sneakpeek")
		v.SetConfigName("sneakpeek")
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	var c CLIConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	c.configFile = v.ConfigFileUsed()
	return &c, nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	config, err = newConfig(viper.New())
	if err != nil {
		wrapFatalln("failed to read configuration", err)
		return
	}
	config.logger, err = dlogger.GetLogger(sneakpeekFlags.root.logLevel)
	if err != nil {
		wrapFatalln("failed to set log level", err)
		return
	}
	if config.configFile != "" {
		config.logger.Debug("using config file", zap.String("file", config.configFile))
	}
}
