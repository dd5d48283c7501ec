package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
// Token issuance happens in the platform's identity service; this API
// only validates bearer tokens signed with the shared secret.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gte=0"`
}

// SRSConfig tunes the scheduling algorithm. Zero values fall back to
// the package defaults in internal/domain/srs.
type SRSConfig struct {
	MinimumIntervalDays  int     `mapstructure:"minimum_interval_days"  validate:"gte=0"`
	FirstReviewEasyDays  int     `mapstructure:"first_review_easy_days" validate:"gte=0"`
	HardGrowthFactor     float64 `mapstructure:"hard_growth_factor"     validate:"gte=0"`
	EasyGrowthFactor     float64 `mapstructure:"easy_growth_factor"     validate:"gte=0"`
	LearningCeilingDays  int     `mapstructure:"learning_ceiling_days"  validate:"gte=0"`
	MasteryThresholdDays int     `mapstructure:"mastery_threshold_days" validate:"gte=0"`
	MasteryStreak        int     `mapstructure:"mastery_streak"         validate:"gte=0"`
}
