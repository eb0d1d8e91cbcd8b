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

// Remote mirror modes
const (
	RemoteFirestore = "firestore"
	RemoteMemory    = "memory"
	RemoteDisabled  = "disabled"
)

type Config struct {
	Env          string
	Port         string
	DatabasePath string

	RemoteMode    string
	RemoteTimeout time.Duration

	FirebaseProjectID         string
	FirebaseStorageBucket     string
	FirebaseCredentialsJSON   string
	FirebaseCredentialsBase64 string
	FirebaseCredentialsFile   string

	// Notifications is "fcm" or "log"
	Notifications string
	// DevOwnerID is used as the authenticated user when Firebase auth is off
	DevOwnerID string

	SchedulerEnabled  bool
	SchedulerInterval time.Duration
	SchedulerFlex     time.Duration

	BudgetWarningThreshold float64
	CORSAllowedOrigins     []string
	Location               *time.Location
}

// IsDevelopment reports whether the service runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// HasFirebaseCredentials reports whether any credential source was configured
func (c *Config) HasFirebaseCredentials() bool {
	return c.FirebaseCredentialsJSON != "" || c.FirebaseCredentialsBase64 != "" || c.FirebaseCredentialsFile != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("database_path", "./finance.db")
	v.SetDefault("remote_mode", RemoteMemory)
	v.SetDefault("remote_timeout", "15s")
	v.SetDefault("firebase_project_id", "")
	v.SetDefault("firebase_storage_bucket", "")
	v.SetDefault("firebase_service_account_json", "")
	v.SetDefault("firebase_service_account_base64", "")
	v.SetDefault("firebase_credentials_file", "")
	v.SetDefault("notifications", "log")
	v.SetDefault("dev_owner_id", "dev-user-1")
	v.SetDefault("scheduler_enabled", true)
	v.SetDefault("scheduler_interval", "24h")
	v.SetDefault("scheduler_flex", "12h")
	v.SetDefault("budget_warning_threshold", 0.8)
	v.SetDefault("cors_allowed_origins", "http://localhost:5173,http://localhost:3000,http://localhost:8080")
	v.SetDefault("timezone", "UTC")
}

// Load reads configuration from the environment, an optional .env file and
// an optional config.yaml in the working directory. Environment wins.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		Env:                       v.GetString("app_env"),
		Port:                      v.GetString("port"),
		DatabasePath:              v.GetString("database_path"),
		RemoteMode:                strings.ToLower(v.GetString("remote_mode")),
		RemoteTimeout:             v.GetDuration("remote_timeout"),
		FirebaseProjectID:         v.GetString("firebase_project_id"),
		FirebaseStorageBucket:     v.GetString("firebase_storage_bucket"),
		FirebaseCredentialsJSON:   v.GetString("firebase_service_account_json"),
		FirebaseCredentialsBase64: v.GetString("firebase_service_account_base64"),
		FirebaseCredentialsFile:   v.GetString("firebase_credentials_file"),
		Notifications:             strings.ToLower(v.GetString("notifications")),
		DevOwnerID:                v.GetString("dev_owner_id"),
		SchedulerEnabled:          v.GetBool("scheduler_enabled"),
		SchedulerInterval:         v.GetDuration("scheduler_interval"),
		SchedulerFlex:             v.GetDuration("scheduler_flex"),
		BudgetWarningThreshold:    v.GetFloat64("budget_warning_threshold"),
	}

	for _, origin := range strings.Split(v.GetString("cors_allowed_origins"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			c.CORSAllowedOrigins = append(c.CORSAllowedOrigins, origin)
		}
	}

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	c.Location = loc

	switch c.RemoteMode {
	case RemoteFirestore, RemoteMemory, RemoteDisabled:
	default:
		return nil, fmt.Errorf("invalid remote_mode %q", c.RemoteMode)
	}

	if c.SchedulerInterval <= 0 {
		return nil, fmt.Errorf("scheduler_interval must be positive, got %s", c.SchedulerInterval)
	}
	if c.SchedulerFlex < 0 || c.SchedulerFlex >= c.SchedulerInterval {
		return nil, fmt.Errorf("scheduler_flex must be in [0, scheduler_interval), got %s", c.SchedulerFlex)
	}
	if c.BudgetWarningThreshold <= 0 || c.BudgetWarningThreshold > 1 {
		return nil, fmt.Errorf("budget_warning_threshold must be in (0, 1], got %v", c.BudgetWarningThreshold)
	}

	return c, nil
}
