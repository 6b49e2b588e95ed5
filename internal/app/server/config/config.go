package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath   = ".env"
	SecretKey = "SecRetKey"
	EnvLocal  = "local"
	EnvDev    = "dev"
	EnvProd   = "prod"
)

const (
	defaultRunAddress    = ":8080"
	defaultMigrations    = "migrations"
	defaultSessionTTL    = 24 * time.Hour
	defaultRefreshWindow = 7 * 24 * time.Hour
	defaultTempTokenTTL  = 5 * time.Minute
	defaultHIBPURL       = "https://api.pwnedpasswords.com"
	defaultBreachTTL     = 24 * time.Hour
	defaultBreachWorkers = 8
	defaultOTPIssuer     = "Windkey"
)

type Config struct {
	Env      string
	DB       DB
	Server   Server
	Logger   Logger
	Security Security
	Session  Session
	Redis    Redis
	Breach   Breach
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Security ключи подписи временных токенов и шифрования паролей
type Security struct {
	Secret           string `env:"SECRET"`
	ServerKey        string `env:"SERVER_KEY"`
	ServerPassphrase string `env:"SERVER_PASSPHRASE"`
	OTPIssuer        string `env:"OTP_ISSUER"`
}

type Session struct {
	TTL           time.Duration `env:"SESSION_TTL"`
	RefreshWindow time.Duration `env:"REFRESH_WINDOW"`
	TempTokenTTL  time.Duration `env:"TEMP_TOKEN_TTL"`
}

// Redis пустой адрес означает хранение в памяти процесса
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
}

type Breach struct {
	URL      string        `env:"HIBP_URL"`
	CacheTTL time.Duration `env:"BREACH_CACHE_TTL"`
	Workers  int           `env:"BREACH_WORKERS"`
}

func MustLoad() *Config {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Println("Не удалось загрузить .env, используем переменные окружения:", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("migrations_path", defaultMigrations)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("otp_issuer", defaultOTPIssuer)
	viper.SetDefault("session_ttl", defaultSessionTTL)
	viper.SetDefault("refresh_window", defaultRefreshWindow)
	viper.SetDefault("temp_token_ttl", defaultTempTokenTTL)
	viper.SetDefault("hibp_url", defaultHIBPURL)
	viper.SetDefault("breach_cache_ttl", defaultBreachTTL)
	viper.SetDefault("breach_workers", defaultBreachWorkers)

	config := Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{RunAddress: viper.GetString("run_address")},
		Logger: Logger{LogLevel: viper.GetString("log_level")},
		Security: Security{
			Secret:           viper.GetString("secret"),
			ServerKey:        viper.GetString("server_key"),
			ServerPassphrase: viper.GetString("server_passphrase"),
			OTPIssuer:        viper.GetString("otp_issuer"),
		},
		Session: Session{
			TTL:           viper.GetDuration("session_ttl"),
			RefreshWindow: viper.GetDuration("refresh_window"),
			TempTokenTTL:  viper.GetDuration("temp_token_ttl"),
		},
		Redis: Redis{
			Addr:     viper.GetString("redis_addr"),
			Password: viper.GetString("redis_password"),
			DB:       viper.GetInt("redis_db"),
		},
		Breach: Breach{
			URL:      viper.GetString("hibp_url"),
			CacheTTL: viper.GetDuration("breach_cache_ttl"),
			Workers:  viper.GetInt("breach_workers"),
		},
	}

	if config.Security.Secret == "" {
		config.Security.Secret = SecretKey
	}
	// без ключа шифрования выводим его из секрета; в prod ключ обязателен
	if config.Security.ServerKey == "" && config.Security.ServerPassphrase == "" && !config.IsProd() {
		config.Security.ServerPassphrase = config.Security.Secret
	}

	return &config
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}
