// Configs are loaded from a yaml file placed on the server. Secrets may be supplied through
// the environment (or a .env file) instead, so they need not be written to disk.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type (
	DatabaseType string
	LogStyle     string
	Environment  string
)

const (
	Inmemory DatabaseType = "inmemory"
	Mysql    DatabaseType = "mysql"
	Postgres DatabaseType = "postgres"
)

const (
	Plain LogStyle = "plain"
	Json  LogStyle = "json"
)

const (
	EnvironmentTest Environment = "test"
	EnvironmentProd Environment = "prod"
)

const (
	EnvDatabasePassword        = "PAYLOAD_DB_PASSWORD"
	EnvApiToken                = "PAYLOAD_API_TOKEN"
	EnvProviderPasswordPattern = "PAYLOAD_PROVIDER_PASSWORD_%d"
)

type (
	Application struct {
		Service  ServiceConfig  `yaml:"service"`
		Server   ServerConfig   `yaml:"server"`
		Database DatabaseConfig `yaml:"database"`
		Security SecurityConfig `yaml:"security"`
		Logging  LoggingConfig  `yaml:"logging"`
		Payload  PayloadConfig  `yaml:"payload"`
		Provider ProviderConfig `yaml:"provider"`
		SyncLock SyncLockConfig `yaml:"sync_lock"`
	}

	ServiceConfig struct {
		Name              string `yaml:"name"`
		StorefrontService string `yaml:"storefront_service"`
	}

	ServerConfig struct {
		BaseAddress  string `yaml:"address"`
		Port         int    `yaml:"port"`
		ReadTimeout  int    `yaml:"read_timeout_seconds"`
		WriteTimeout int    `yaml:"write_timeout_seconds"`
		IdleTimeout  int    `yaml:"idle_timeout_seconds"`
	}

	DatabaseConfig struct {
		Use        DatabaseType `yaml:"use"`
		Username   string       `yaml:"username"`
		Password   string       `yaml:"password"`
		Database   string       `yaml:"database"`
		Parameters []string     `yaml:"parameters"`
	}

	SecurityConfig struct {
		Fixed FixedTokenConfig    `yaml:"fixed_token"`
		Oidc  OpenIdConnectConfig `yaml:"oidc"`
		Cors  CorsConfig          `yaml:"cors"`
	}

	FixedTokenConfig struct {
		Api string `yaml:"api"`
	}

	OpenIdConnectConfig struct {
		TokenCookieName    string   `yaml:"token_cookie_name"`
		TokenPublicKeysPEM []string `yaml:"token_public_keys_PEM"`
		UserInfoURL        string   `yaml:"user_info_url"`
		AdminRole          string   `yaml:"admin_role"`
	}

	CorsConfig struct {
		DisableCors bool   `yaml:"disable"`
		AllowOrigin string `yaml:"allow_origin"`
	}

	LoggingConfig struct {
		Severity string   `yaml:"severity"`
		Style    LogStyle `yaml:"style"`
	}

	PayloadConfig struct {
		UnitMeasure             string `yaml:"unit_measure"`
		RoundTaxPercentage      bool   `yaml:"round_tax_percentage"`
		ReconciliationTolerance string `yaml:"reconciliation_tolerance"`
	}

	ProviderConfig struct {
		BaseURL  string            `yaml:"base_url"`
		Accounts []ProviderAccount `yaml:"accounts"`
	}

	ProviderAccount struct {
		Username    string      `yaml:"username"`
		Password    string      `yaml:"password"`
		Environment Environment `yaml:"environment"`
		StoreID     string      `yaml:"store_id"`
		Country     string      `yaml:"country"`
	}

	SyncLockConfig struct {
		RedisAddress  string `yaml:"redis_address"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		TTLSeconds    int    `yaml:"ttl_seconds"`
	}
)

// Tolerance returns the parsed reconciliation tolerance. Call Validate first.
func (p PayloadConfig) Tolerance() decimal.Decimal {
	value, err := decimal.NewFromString(p.ReconciliationTolerance)
	if err != nil {
		return decimal.Zero
	}
	return value
}

var appConfig *Application

var ErrNotLoaded = errors.New("application configuration has not been loaded")

// GetApplicationConfig returns the configuration set up by LoadConfiguration.
func GetApplicationConfig() (*Application, error) {
	if appConfig == nil {
		return nil, ErrNotLoaded
	}
	return appConfig, nil
}

// LoadConfiguration reads, overrides from the environment and validates the configuration file.
// On success it becomes the configuration returned by GetApplicationConfig.
func LoadConfiguration(filename string, logFunc func(format string, v ...interface{})) (*Application, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file %s: %w", filename, err)
	}
	defer file.Close()

	conf, err := UnmarshalFromYamlConfiguration(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", filename, err)
	}

	ApplyEnvironmentOverrides(conf, os.Getenv)

	if err := Validate(conf, logFunc); err != nil {
		return nil, err
	}

	appConfig = conf
	return conf, nil
}

func UnmarshalFromYamlConfiguration(file io.Reader) (*Application, error) {
	d := yaml.NewDecoder(file)
	d.KnownFields(true)

	conf := &Application{}
	if err := d.Decode(conf); err != nil {
		return nil, err
	}

	setDefaults(conf)
	return conf, nil
}

func setDefaults(conf *Application) {
	if conf.Logging.Severity == "" {
		conf.Logging.Severity = "INFO"
	}
	if conf.Logging.Style == "" {
		conf.Logging.Style = Plain
	}
	if conf.Payload.UnitMeasure == "" {
		conf.Payload.UnitMeasure = "st"
	}
	if conf.Payload.ReconciliationTolerance == "" {
		conf.Payload.ReconciliationTolerance = "0.01"
	}
	if conf.SyncLock.TTLSeconds == 0 {
		conf.SyncLock.TTLSeconds = 60
	}
}

// ApplyEnvironmentOverrides replaces secrets with values from the environment where set.
func ApplyEnvironmentOverrides(conf *Application, getenv func(string) string) {
	if value := getenv(EnvDatabasePassword); value != "" {
		conf.Database.Password = value
	}
	if value := getenv(EnvApiToken); value != "" {
		conf.Security.Fixed.Api = value
	}
	for i := range conf.Provider.Accounts {
		if value := getenv(fmt.Sprintf(EnvProviderPasswordPattern, i)); value != "" {
			conf.Provider.Accounts[i].Password = value
		}
	}
}
