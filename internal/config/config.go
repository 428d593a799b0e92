package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env                 string        `mapstructure:"ENV"`
	Port                string        `mapstructure:"PORT"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL"`
	JWTSecret           string        `mapstructure:"JWT_SECRET"`
	WebhookSecret       string        `mapstructure:"VOICE_WEBHOOK_SECRET"`
	GoogleCredentials   string        `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	SheetID             string        `mapstructure:"GOOGLE_SHEET_ID"`
	SheetName           string        `mapstructure:"GOOGLE_SHEET_NAME"`
	SyncInterval        time.Duration `mapstructure:"SYNC_INTERVAL"`
	IngestionOwnerEmail string        `mapstructure:"INGESTION_OWNER_EMAIL"`
	CORSAllowed         string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout      time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GOOGLE_SHEET_NAME", "Sheet1")
	v.SetDefault("SYNC_INTERVAL", "5m")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
