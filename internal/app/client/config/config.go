package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress  = "localhost:8080"
	defaultLogLevel       = "info"
	defaultEnv            = "local"
	defaultConfigDir      = ".windkey"
	defaultDataFile       = "windkey.db"
	defaultRequestTimeout = 30
	configFileName        = "config"
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	ServerAddress  string        `mapstructure:"server_address"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	DataPath       string        `mapstructure:"data_path"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
	RequestTimeout time.Duration `mapstructure:"-"`
}

// Load читает .env, переменные окружения и необязательный config.yaml.
// configFile переопределяет путь к файлу конфигурации.
func Load(configFile string) (*Config, error) {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("server_address", defaultServerAddress)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("config_dir", defaultConfigDir)
	v.SetDefault("enable_tls", false)
	v.SetDefault("request_timeout_seconds", defaultRequestTimeout)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := v.GetString("config_dir")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	dataPath := v.GetString("data_path")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, defaultDataFile)
	}

	cfg := &Config{
		Env:            v.GetString("app_env"),
		ServerAddress:  v.GetString("server_address"),
		LogLevel:       v.GetString("log_level"),
		ConfigDir:      configDir,
		DataPath:       dataPath,
		EnableTLS:      v.GetBool("enable_tls"),
		RequestTimeout: time.Duration(v.GetInt("request_timeout_seconds")) * time.Second,
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть положительным")
	}
	return nil
}

// BaseURL адрес сервера со схемой
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
