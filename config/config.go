package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all pipeline parameters. Every field has a fixed default and can be
// overridden through the environment or a .env file.
type Config struct {
	LogLevel string

	// Holidays
	HolidayAPIBase    string
	HolidayCountry    string
	HolidayStartYear  int
	HolidayEndYear    int
	HolidayOutputPath string

	// Reviews
	BusinessInputPath  string
	ReviewInputPath    string
	BusinessOutputPath string
	ReviewOutputPath   string
	BusinessSampleSize int
	ReviewSampleSize   int

	// Weather
	WeatherAPIBase    string
	WeatherInputPath  string
	WeatherOutputPath string
	WeatherPauseMs    int

	// HTTP
	HTTPTimeoutSec int
	MaxRetries     int
	RetryBackoffMs int

	// Response cache
	CacheBackend  string
	CachePath     string
	CacheTTLSec   int
	RedisAddr     string
	RedisPassword string

	// Optional PostgreSQL sink for holidays
	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		HolidayAPIBase:    getEnv("HOLIDAY_API_BASE", "https://date.nager.at/api/v3"),
		HolidayCountry:    getEnv("HOLIDAY_COUNTRY", "US"),
		HolidayStartYear:  getEnvInt("HOLIDAY_START_YEAR", 2005),
		HolidayEndYear:    getEnvInt("HOLIDAY_END_YEAR", 2025),
		HolidayOutputPath: getEnv("HOLIDAY_OUTPUT_PATH", "us_holidays_2005-2025.csv"),

		BusinessInputPath:  getEnv("BUSINESS_INPUT_PATH", "yelp_academic_dataset_business.json"),
		ReviewInputPath:    getEnv("REVIEW_INPUT_PATH", "yelp_academic_dataset_review.json"),
		BusinessOutputPath: getEnv("BUSINESS_OUTPUT_PATH", "top_75_restaurants.csv"),
		ReviewOutputPath:   getEnv("REVIEW_OUTPUT_PATH", "selected_restaurant_reviews_75.csv"),
		BusinessSampleSize: getEnvInt("BUSINESS_SAMPLE_SIZE", 75),
		ReviewSampleSize:   getEnvInt("REVIEW_SAMPLE_SIZE", 130),

		WeatherAPIBase:    getEnv("WEATHER_API_BASE", "https://archive-api.open-meteo.com/v1"),
		WeatherInputPath:  getEnv("WEATHER_INPUT_PATH", "merged_rest_review.csv"),
		WeatherOutputPath: getEnv("WEATHER_OUTPUT_PATH", "reviews_with_weather.csv"),
		WeatherPauseMs:    getEnvInt("WEATHER_PAUSE_MS", 5000),

		HTTPTimeoutSec: getEnvInt("HTTP_TIMEOUT_SEC", 10),
		MaxRetries:     getEnvInt("MAX_RETRIES", 5),
		RetryBackoffMs: getEnvInt("RETRY_BACKOFF_MS", 200),

		CacheBackend:  strings.ToLower(getEnv("CACHE_BACKEND", "sqlite")),
		CachePath:     getEnv("CACHE_PATH", ".cache.sqlite"),
		CacheTTLSec:   getEnvInt("CACHE_TTL_SEC", 3600),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "collector"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "collector"),
		PostgresDB:       getEnv("POSTGRES_DB", "datasets"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMs) * time.Millisecond
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

func (c *Config) WeatherPause() time.Duration {
	return time.Duration(c.WeatherPauseMs) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
