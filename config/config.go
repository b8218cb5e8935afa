package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Perplexity API
	PerplexityAPIKey  string
	PerplexityBaseURL string
	AnalysisModel     string
	SearchModel       string

	// Server
	Port  string
	Debug bool

	// Storage
	DataDir    string
	DBFile     string
	UploadsDir string

	// External converter for legacy .doc uploads
	SofficeBinary string

	// Timeouts and limits
	HTTPTimeoutSeconds    int
	SearchBudgetSeconds   int
	QueuePollSeconds      int
	IdleNoticeSeconds     int
	SufficientJobsCount   int
	MaxJobResults         int
	SearchDomainAllowlist []string

	// Authentication
	JWTSecret      string
	JWTExpiryHours int

	// Logging
	LogJSON bool
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Perplexity API
		PerplexityAPIKey:  getEnv("PERPLEXITY_API_KEY", ""),
		PerplexityBaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
		AnalysisModel:     getEnv("PERPLEXITY_ANALYSIS_MODEL", "sonar-reasoning-pro"),
		SearchModel:       getEnv("PERPLEXITY_SEARCH_MODEL", "sonar-pro"),

		// Server
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		// Storage
		DataDir:    getEnv("DATA_DIR", "data"),
		DBFile:     getEnv("DB_FILE", "db.json"),
		UploadsDir: getEnv("UPLOADS_DIR", "data/uploads"),

		// External converter
		SofficeBinary: getEnv("SOFFICE_BINARY", "soffice"),

		// Timeouts and limits
		HTTPTimeoutSeconds:  getEnvInt("HTTP_TIMEOUT_SECONDS", 60),
		SearchBudgetSeconds: getEnvInt("SEARCH_BUDGET_SECONDS", 120),
		QueuePollSeconds:    getEnvInt("QUEUE_POLL_SECONDS", 3),
		IdleNoticeSeconds:   getEnvInt("IDLE_NOTICE_SECONDS", 20),
		SufficientJobsCount: getEnvInt("SUFFICIENT_JOBS_COUNT", 25),
		MaxJobResults:       getEnvInt("MAX_JOB_RESULTS", 50),
		SearchDomainAllowlist: getEnvList("SEARCH_DOMAIN_ALLOWLIST",
			[]string{"linkedin.com", "indeed.com", "glassdoor.com"}),

		// Authentication
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		// Logging
		LogJSON: getEnvBool("LOG_JSON", false),
	}

	return cfg
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	// The API key may be absent in development; analysis then degrades to the
	// local fallback and the job search reports an error event.
	if c.DataDir == "" {
		return &ConfigError{Field: "DATA_DIR", Message: "DATA_DIR must not be empty"}
	}
	if c.SufficientJobsCount <= 0 {
		return &ConfigError{Field: "SUFFICIENT_JOBS_COUNT", Message: "SUFFICIENT_JOBS_COUNT must be positive"}
	}
	if c.SearchBudgetSeconds <= 0 {
		return &ConfigError{Field: "SEARCH_BUDGET_SECONDS", Message: "SEARCH_BUDGET_SECONDS must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
