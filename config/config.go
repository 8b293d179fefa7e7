package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every configuration parameter, read from the environment.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	NewsDataAPIKey  string `envconfig:"NEWSDATA_API_KEY" required:"true"`
	NewsDataBaseURL string `envconfig:"NEWSDATA_BASE_URL" default:"https://newsdata.io/api/1/news"`
	GNewsAPIKey     string `envconfig:"GNEWS_API_KEY"`
	GNewsBaseURL    string `envconfig:"GNEWS_BASE_URL" default:"https://gnews.io/api/v4/search"`

	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-pro"`

	CronSchedule        string `envconfig:"CRON_SCHEDULE" default:"0 * * * *"`
	MaxArticlesPerFetch int    `envconfig:"MAX_ARTICLES_PER_FETCH" default:"10"`
	ScraperEnabled      bool   `envconfig:"SCRAPER_ENABLED" default:"true"`

	RateLimitMaxRequests int `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"10"`
	RateLimitWindowMs    int `envconfig:"RATE_LIMIT_WINDOW_MS" default:"60000"`

	// Optional article archive. Leave the bucket empty to disable.
	ArchiveS3Key    string `envconfig:"ARCHIVE_S3_KEY"`
	ArchiveS3Secret string `envconfig:"ARCHIVE_S3_SECRET"`
	ArchiveS3URL    string `envconfig:"ARCHIVE_S3_URL"`
	ArchiveS3Region string `envconfig:"ARCHIVE_S3_REGION"`
	ArchiveS3Bucket string `envconfig:"ARCHIVE_S3_BUCKET"`

	// Comma-separated, tried in order; first successful fetch wins.
	EnabledProviders string `envconfig:"ENABLED_PROVIDERS" default:"newsdata,gnews"`
}

// DSN returns the data source name for the PostgreSQL connection.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// ArchiveEnabled reports whether the optional S3 archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveS3Bucket != ""
}

// Load reads the configuration from the environment. Missing required
// values fail here, before any pipeline run starts.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
