package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// Config is the resolved application configuration. It is built once by Load
// and handed to constructors; nothing below main reads viper directly.
type Config struct {
	APIKey      string
	APIBaseURL  string        `validate:"required,url"`
	HTTPTimeout time.Duration `validate:"gt=0"`

	ServerPort        string `validate:"required,numeric"`
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	StorageDriver string `validate:"oneof=redis sqlite memory none"`
	SQLitePath    string `validate:"required_if=StorageDriver sqlite"`
	RedisAddr     string `validate:"required_if=StorageDriver redis"`

	ForecastMaxDays int    `validate:"gte=1"`
	DefaultUnit     string `validate:"oneof=metric imperial"`
}

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("openweathermap.base_url", "https://api.openweathermap.org/data/2.5")
	viper.SetDefault("openweathermap.timeout", "10s")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_header_timeout", "15s")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "30s")
	viper.SetDefault("storage.driver", "redis")
	viper.SetDefault("storage.sqlite_path", "weather.db")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("forecast.max_days", 5)
	viper.SetDefault("preferences.default_unit", "metric")
}

func initConfig() {
	once.Do(func() {
		setDefaults()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
		}

		err = viper.MergeInConfig()
		if err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Load resolves every setting, validates the result and returns it.
func Load() (*Config, error) {
	initConfig()
	cfg := &Config{
		APIKey:            GetOpenWeatherMapAPIKey(),
		APIBaseURL:        GetOpenWeatherApiUrl(),
		HTTPTimeout:       getDuration("openweathermap.timeout", 10*time.Second),
		ServerPort:        GetServerPort(),
		ReadHeaderTimeout: getDuration("server.read_header_timeout", 15*time.Second),
		ReadTimeout:       getDuration("server.read_timeout", 15*time.Second),
		WriteTimeout:      getDuration("server.write_timeout", 10*time.Second),
		IdleTimeout:       getDuration("server.idle_timeout", 30*time.Second),
		StorageDriver:     GetStorageDriver(),
		SQLitePath:        viper.GetString("storage.sqlite_path"),
		RedisAddr:         GetRedisAddr(),
		ForecastMaxDays:   viper.GetInt("forecast.max_days"),
		DefaultUnit:       viper.GetString("preferences.default_unit"),
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return strings.TrimRight(viper.GetString("openweathermap.base_url"), "/")
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetStorageDriver() string {
	initConfig()
	return viper.GetString("storage.driver")
}

func GetServerPort() string {
	initConfig()
	serverPort := viper.GetString("server.port")
	return serverPort
}

// getDuration reads a duration key, falling back to def when unset or invalid.
func getDuration(key string, def time.Duration) time.Duration {
	durStr := viper.GetString(key)
	if durStr == "" {
		return def
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		GetLogger().Warnw("Invalid duration in config, using default", "key", key, "value", durStr, "default", def)
		return def
	}
	return dur
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
