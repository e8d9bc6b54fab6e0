package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN string
}

type AuthConfig struct {
	AccessSecret string
}

// BillingConfig carries the default rate parameters applied to a fresh
// invoice draft.
type BillingConfig struct {
	VATPct            float64
	AdminSurchargePct float64
	TravelSurcharge   float64
	SelfRisk          float64
	Currency          string
	DueDays           int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Billing     BillingConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN: v.GetString("DB_DSN"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Billing: BillingConfig{
			VATPct:            v.GetFloat64("BILLING_VAT_PCT"),
			AdminSurchargePct: v.GetFloat64("BILLING_ADMIN_SURCHARGE_PCT"),
			TravelSurcharge:   v.GetFloat64("BILLING_TRAVEL_SURCHARGE"),
			SelfRisk:          v.GetFloat64("BILLING_SELF_RISK"),
			Currency:          v.GetString("BILLING_CURRENCY"),
			DueDays:           v.GetInt("BILLING_DUE_DAYS"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Billing.VATPct == 0 {
		cfg.Billing.VATPct = 0.25
	}
	if cfg.Billing.AdminSurchargePct == 0 {
		cfg.Billing.AdminSurchargePct = 0.06
	}
	if cfg.Billing.TravelSurcharge == 0 {
		cfg.Billing.TravelSurcharge = 750
	}
	if cfg.Billing.SelfRisk == 0 {
		cfg.Billing.SelfRisk = 3000
	}
	if cfg.Billing.Currency == "" {
		cfg.Billing.Currency = "SEK"
	}
	if cfg.Billing.DueDays == 0 {
		cfg.Billing.DueDays = 14
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}
