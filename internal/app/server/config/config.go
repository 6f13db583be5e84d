package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

var (
	ErrNoAppID     = errors.New("APP_ID is required")
	ErrNoMasterKey = errors.New("MASTER_KEY is required")
)

type Config struct {
	Env             string
	Server          server
	Parse           parse
	DB              db
	ShutdownTimeout time.Duration
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
	MountPath  string `env:"MOUNT_PATH"`
	PublicURL  string `env:"PUBLIC_URL"`
}

type parse struct {
	AppID     string `env:"APP_ID"`
	MasterKey string `env:"MASTER_KEY"`
}

type db struct {
	// пустая строка - объекты хранятся в памяти процесса
	DatabaseURI string `env:"DATABASE_URI"`
}

// MustLoad читает конфигурацию и завершает процесс при ошибке
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func Load() (*Config, error) {
	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", "localhost:1337")
	viper.SetDefault("mount_path", "/parse")
	viper.SetDefault("shutdown_timeout_seconds", 10)

	cfg := &Config{
		Env: viper.GetString("app_env"),
		Server: server{
			RunAddress: viper.GetString("run_address"),
			MountPath:  normalizeMountPath(viper.GetString("mount_path")),
			PublicURL:  viper.GetString("public_url"),
		},
		Parse: parse{
			AppID:     viper.GetString("app_id"),
			MasterKey: viper.GetString("master_key"),
		},
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
		},
		ShutdownTimeout: time.Duration(viper.GetInt("shutdown_timeout_seconds")) * time.Second,
	}

	if cfg.Server.PublicURL == "" {
		cfg.Server.PublicURL = "http://" + cfg.Server.RunAddress + cfg.Server.MountPath
	}
	cfg.Server.PublicURL = strings.TrimRight(cfg.Server.PublicURL, "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Parse.AppID == "" {
		return ErrNoAppID
	}
	if c.Parse.MasterKey == "" {
		return ErrNoMasterKey
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// InMemory сообщает, что база данных не настроена
func (c *Config) InMemory() bool {
	return c.DB.DatabaseURI == ""
}

func normalizeMountPath(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
