package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT               string
	CorsAllowedOrigins []string
}

type CatalogApiConfig struct {
	URL              string
	Timeout          time.Duration // таймаут одного запроса к каталогу
	PageSize         int
	MaxPageSize      int
	PhotoFallbackURL string
}

type FeaturedConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// FavoritesConfig - где хранить список избранного: memory, file, redis или postgres.
type FavoritesConfig struct {
	Store     string
	FilePath  string
	Namespace string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DBconfig struct {
	URL string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	CatalogApi   CatalogApiConfig
	Featured     FeaturedConfig
	Favorites    FavoritesConfig
	Redis        RedisConfig
	Database     DBconfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 && envPath[0] != "" {
		err = godotenv.Load(envPath[0])
		if err != nil {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath[0], err)
		}
	} else if err = godotenv.Load(); err != nil {
		log.Printf("Info: no .env file found (%v), using environment variables.\n", err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listing-service")

	cfg.Rest.PORT = getEnvAsString("PORT", "8085")
	cfg.Rest.CorsAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	cfg.CatalogApi.URL = os.Getenv("CATALOG_API_URL")
	if cfg.CatalogApi.URL == "" {
		return nil, fmt.Errorf("CATALOG_API_URL environment variable is required")
	}
	cfg.CatalogApi.Timeout = getEnvAsDuration("CATALOG_API_TIMEOUT", 10*time.Second)
	cfg.CatalogApi.PageSize = getEnvAsInt("LISTING_PAGE_SIZE", 12)
	cfg.CatalogApi.MaxPageSize = getEnvAsInt("LISTING_MAX_PAGE_SIZE", 100)
	cfg.CatalogApi.PhotoFallbackURL = getEnvAsString("PHOTO_FALLBACK_URL", "/images/property-placeholder.jpg")

	cfg.Featured.MaxRetries = getEnvAsInt("FEATURED_MAX_RETRIES", 3)
	cfg.Featured.BaseDelay = time.Duration(getEnvAsInt("FEATURED_BASE_DELAY_MS", 1000)) * time.Millisecond

	cfg.Favorites.Store = strings.ToLower(getEnvAsString("FAVORITES_STORE", "memory"))
	cfg.Favorites.FilePath = getEnvAsString("FAVORITES_FILE", defaultFavoritesFile())
	cfg.Favorites.Namespace = getEnvAsString("FAVORITES_NAMESPACE", "default")

	switch cfg.Favorites.Store {
	case "memory", "file":
	case "redis":
		cfg.Redis.Addr = getEnvAsString("REDIS_ADDR", "localhost:6379")
		cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
		cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	case "postgres":
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when FAVORITES_STORE=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown FAVORITES_STORE %q (expected memory, file, redis or postgres)", cfg.Favorites.Store)
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func defaultFavoritesFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".listing-favorites.json"
	}
	return home + "/.config/listing-service/favorites.json"
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration принимает как "10s", так и число секунд.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if d, err := time.ParseDuration(valStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration. Using default value: %s\n", key, valStr, defaultValue)
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
