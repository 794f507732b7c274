package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable pool_max_conns=%d",
		config.User, config.Pass, config.Host, config.Port, config.Name, config.MaxConns,
	)
}

func (config *DbServer) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type RateProviderAPI struct {
	// Provider selects the registered rate provider module.
	Provider  string `mapstructure:"provider"`
	BaseURL   string `mapstructure:"base_url"`
	AccessKey string `mapstructure:"access_key"`
}

type Scheduler struct {
	UpdateIntervalHours int `mapstructure:"update_interval_hours"`
}

type GeoIP struct {
	DbPath string `mapstructure:"db_path"`
}

type Mail struct {
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	Admins   []string `mapstructure:"admins"`
}

type Shop struct {
	DefaultLocale string `mapstructure:"default_locale"`
	CacheSize     int64  `mapstructure:"cache_size"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	DbServer        DbServer        `mapstructure:"db_server"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	Logging         Logging         `mapstructure:"logging"`
	RateProviderAPI RateProviderAPI `mapstructure:"exchange_rate_api"`
	Scheduler       Scheduler       `mapstructure:"scheduler"`
	GeoIP           GeoIP           `mapstructure:"geoip"`
	Mail            Mail            `mapstructure:"mail"`
	Shop            Shop            `mapstructure:"shop"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("db_server.max_conns", 10)
	viper.SetDefault("http_client.timeout_seconds", 10)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("exchange_rate_api.provider", "fixer")
	viper.SetDefault("scheduler.update_interval_hours", 24)
	viper.SetDefault("shop.default_locale", "en")
	viper.SetDefault("shop.cache_size", 1024)
	viper.SetDefault("currency.buffer", "0.00")
	viper.SetDefault("currency.round_up", false)
	viper.SetDefault("currency.psychological_pricing", false)

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = viper.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rate provider env vars
	_ = viper.BindEnv("exchange_rate_api.provider", "EXCHANGE_RATE_PROVIDER")
	_ = viper.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_BASE_URL")
	_ = viper.BindEnv("exchange_rate_api.access_key", "EXCHANGE_RATE_ACCESS_KEY")

	// geoip / mail env vars
	_ = viper.BindEnv("geoip.db_path", "GEOIP_DB_PATH")
	_ = viper.BindEnv("mail.host", "MAIL_HOST")
	_ = viper.BindEnv("mail.port", "MAIL_PORT")
	_ = viper.BindEnv("mail.username", "MAIL_USERNAME")
	_ = viper.BindEnv("mail.password", "MAIL_PASSWORD")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
