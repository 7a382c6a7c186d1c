package config

import (
	"github.com/spf13/viper"
)

// Config carries every tunable the service reads from the environment.
// main loads .env into the process env first (godotenv), viper picks it up here.
type Config struct {
	Env  string `mapstructure:"APP_ENV"`
	Port string `mapstructure:"PORT"`

	// Cloud backend (leave DATABASE_URL empty to run purely on the local store)
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Local/demo backend
	LocalDataDir string `mapstructure:"LOCAL_DATA_DIR"`

	// Redis (optional, leaderboard cache)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Upstream sensor feed sync
	SensorFeedURL   string `mapstructure:"SENSOR_FEED_URL"`
	SensorFeedToken string `mapstructure:"SENSOR_FEED_TOKEN"`

	// R2 / S3 report photo storage
	R2AccountID       string `mapstructure:"CLOUDFLARE_ACCOUNT_ID"`
	R2AccessKeyID     string `mapstructure:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string `mapstructure:"R2_ACCESS_KEY_SECRET"`
	R2BucketName      string `mapstructure:"R2_BUCKET_NAME"`
	CDNBaseURL        string `mapstructure:"CDN_BASE_URL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "5300")
	v.SetDefault("LOCAL_DATA_DIR", "./data")

	// AutomaticEnv alone does not surface env vars through Unmarshal,
	// so bind each key explicitly.
	for _, key := range []string{
		"APP_ENV", "PORT", "DATABASE_URL", "LOCAL_DATA_DIR",
		"REDIS_ADDR", "REDIS_PASSWORD",
		"SENSOR_FEED_URL", "SENSOR_FEED_TOKEN",
		"CLOUDFLARE_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_ACCESS_KEY_SECRET",
		"R2_BUCKET_NAME", "CDN_BASE_URL",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
