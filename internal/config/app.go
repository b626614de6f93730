package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port         string `mapstructure:"port"`
	ExposeErrors bool   `mapstructure:"expose_errors"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type ExchangeRateProvider struct {
	ClientName            string   `mapstructure:"client_name"`
	BaseURL               string   `mapstructure:"base_url"`
	UnsupportedCurrencies []string `mapstructure:"unsupported_currencies"`
}

type Cache struct {
	TTLSeconds int   `mapstructure:"ttl_seconds"`
	MaxItems   int64 `mapstructure:"max_items"`
}

type Retry struct {
	Attempts      int     `mapstructure:"attempts"`
	BackoffBase   float64 `mapstructure:"backoff_base"`
	BackoffUnitMs int     `mapstructure:"backoff_unit_ms"`
}

type CircuitBreaker struct {
	FailureThreshold     uint32 `mapstructure:"failure_threshold"`
	BreakDurationSeconds int    `mapstructure:"break_duration_seconds"`
}

type JWT struct {
	Secret            string `mapstructure:"secret"`
	Issuer            string `mapstructure:"issuer"`
	Audience          string `mapstructure:"audience"`
	ExpirationMinutes int    `mapstructure:"expiration_minutes"`
}

type RateLimit struct {
	MaxRequestsInWindow int `mapstructure:"max_requests_in_window"`
	WindowMinutes       int `mapstructure:"window_minutes"`
}

type Warmup struct {
	Bases           []string `mapstructure:"bases"`
	IntervalSeconds int      `mapstructure:"interval_seconds"`
}

type AppConfig struct {
	HTTPServer           HTTPServer           `mapstructure:"http_server"`
	Logging              Logging              `mapstructure:"logging"`
	HTTPClient           HTTPClient           `mapstructure:"http_client"`
	ExchangeRateProvider ExchangeRateProvider `mapstructure:"exchange_rate_provider"`
	Cache                Cache                `mapstructure:"cache"`
	Retry                Retry                `mapstructure:"retry"`
	CircuitBreaker       CircuitBreaker       `mapstructure:"circuit_breaker"`
	JWT                  JWT                  `mapstructure:"jwt"`
	RateLimit            RateLimit            `mapstructure:"rate_limit"`
	Warmup               Warmup               `mapstructure:"warmup"`
}

func (c HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c Retry) BackoffUnit() time.Duration {
	return time.Duration(c.BackoffUnitMs) * time.Millisecond
}

func (c CircuitBreaker) BreakDuration() time.Duration {
	return time.Duration(c.BreakDurationSeconds) * time.Second
}

func (c JWT) Expiration() time.Duration {
	return time.Duration(c.ExpirationMinutes) * time.Minute
}

func (c RateLimit) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

func (c Warmup) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

func Init() (*AppConfig, error) {
	return Load(".env", "config.yaml")
}

// Load reads configFile and envFile when they exist, then applies environment
// overrides. Missing files are not an error; every key has a default.
func Load(envFile, configFile string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.expose_errors", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_provider.client_name", "frankfurter")
	v.SetDefault("exchange_rate_provider.base_url", "https://api.frankfurter.app/")
	v.SetDefault("exchange_rate_provider.unsupported_currencies", []string{"TRY", "PLN", "THB", "MXN"})
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.max_items", 10_000)
	v.SetDefault("retry.attempts", 4)
	v.SetDefault("retry.backoff_base", 2)
	v.SetDefault("retry.backoff_unit_ms", 1000)
	v.SetDefault("circuit_breaker.failure_threshold", 3)
	v.SetDefault("circuit_breaker.break_duration_seconds", 30)
	v.SetDefault("jwt.issuer", "currency-converter")
	v.SetDefault("jwt.audience", "currency-converter-clients")
	v.SetDefault("jwt.expiration_minutes", 60)
	v.SetDefault("rate_limit.max_requests_in_window", 100)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("warmup.bases", []string{})
	v.SetDefault("warmup.interval_seconds", 240)

	// http server env vars
	_ = v.BindEnv("http_server.port", "PORT")
	_ = v.BindEnv("http_server.expose_errors", "EXPOSE_ERRORS")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	// upstream env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("exchange_rate_provider.client_name", "EXCHANGE_RATE_CLIENT_NAME")
	_ = v.BindEnv("exchange_rate_provider.base_url", "EXCHANGE_RATE_BASE_URL")

	// jwt env vars
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("jwt.issuer", "JWT_ISSUER")
	_ = v.BindEnv("jwt.audience", "JWT_AUDIENCE")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
