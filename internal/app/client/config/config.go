package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel         = "info"
	defaultEnv              = "prod"
	defaultConfigDir        = ".parsedash"
	defaultRequestTimeout   = 30
	defaultPurgeConcurrency = 8
	defaultPageSize         = 1000
)

type Config struct {
	Env              string        `mapstructure:"app_env"`
	LogLevel         string        `mapstructure:"log_level"`
	ConfigDir        string        `mapstructure:"config_dir"`
	DataPath         string        `mapstructure:"data_path"`
	StatePath        string        `mapstructure:"state_path"`
	KeyPath          string        `mapstructure:"key_path"`
	Passphrase       string        `mapstructure:"passphrase"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout_seconds"`
	PurgeConcurrency int           `mapstructure:"purge_concurrency"`
	PageSize         int           `mapstructure:"page_size"`
	Profile          string        `mapstructure:"profile"`
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env, переменные окружения и уже прочитанный viper-файл
func Load() (*Config, error) {
	// Загружаем .env файл если существует
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	// Устанавливаем значения по умолчанию
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)
	viper.SetDefault("PURGE_CONCURRENCY", defaultPurgeConcurrency)
	viper.SetDefault("PAGE_SIZE", defaultPageSize)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	// Вычисляем пути для хранения данных
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	cfg := &Config{
		Env:              viper.GetString("APP_ENV"),
		LogLevel:         viper.GetString("LOG_LEVEL"),
		ConfigDir:        configDir,
		DataPath:         pathOr(viper.GetString("DATA_PATH"), filepath.Join(configDir, "parsedash.db")),
		StatePath:        pathOr(viper.GetString("STATE_PATH"), filepath.Join(configDir, "state.json")),
		KeyPath:          pathOr(viper.GetString("KEY_PATH"), filepath.Join(configDir, "profile.key")),
		Passphrase:       viper.GetString("PASSPHRASE"),
		RequestTimeout:   time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		PurgeConcurrency: viper.GetInt("PURGE_CONCURRENCY"),
		PageSize:         viper.GetInt("PAGE_SIZE"),
		Profile:          viper.GetString("PROFILE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func pathOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (c *Config) validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path не может быть пустым")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть положительным")
	}
	if c.PurgeConcurrency <= 0 {
		return fmt.Errorf("purge_concurrency должен быть положительным")
	}
	if c.PageSize <= 0 || c.PageSize > 1000 {
		return fmt.Errorf("page_size должен быть в диапазоне 1..1000")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
