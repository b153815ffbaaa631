package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/relove-market/storefront/internal/log"
)

type Application struct {
	Env     string `mapstructure:"env"      json:"env"`
	LogFile string `mapstructure:"log_file" json:"log_file"`
}

type Api struct {
	BaseUrl        string `mapstructure:"base_url"        json:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" json:"timeout_seconds"`
}

type Catalog struct {
	PageSize int    `mapstructure:"page_size" json:"page_size"`
	Sort     string `mapstructure:"sort"      json:"sort"`
}

type Payment struct {
	ReturnHost string `mapstructure:"return_host" json:"return_host"`
	ReturnPort int    `mapstructure:"return_port" json:"return_port"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Config struct {
	Application `mapstructure:"application" json:"application"`
	Api         `mapstructure:"api"         json:"api"`
	Catalog     `mapstructure:"catalog"     json:"catalog"`
	Payment     `mapstructure:"payment"     json:"payment"`
	Otel        `mapstructure:"otel"        json:"otel"`
}

var (
	once   sync.Once
	config *Config
)

func InitConfig(c context.Context, filename string) *Config {
	cfg := Config{}
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KEY_TAG, "InitConfig").
			Str("filename", filename).
			Logger()

		viper.SetConfigName(filename)
		viper.AddConfigPath("./env")
		viper.SetConfigType("yaml")
		viper.SetEnvPrefix("storefront")
		viper.AutomaticEnv()

		viper.SetDefault("application.env", "production")
		viper.SetDefault("application.log_file", "/var/log/storefront.log")
		viper.SetDefault("api.timeout_seconds", 30)
		viper.SetDefault("catalog.page_size", 8)
		viper.SetDefault("catalog.sort", "id,desc")
		viper.SetDefault("payment.return_host", "127.0.0.1")
		viper.SetDefault("payment.return_port", 8917)
		viper.SetDefault("otel.host", "localhost")
		viper.SetDefault("otel.port", 4317)

		logger = logger.With().Str(log.KEY_PROCESS, "reading config").Logger()
		logger.Info().Msg("reading config")
		err := viper.ReadInConfig()
		if err != nil {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(log.KEY_PROCESS, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		err = viper.Unmarshal(&cfg)
		if err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger = logger.With().Any(log.KEY_CONFIG, cfg).Logger()
		logger.Info().Msg("unmarshaled config")
	})
	return config
}
