package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret   string `yaml:"secret"`
	Issuer   string `yaml:"issuer"`
	TokenTTL string `yaml:"token_ttl"`
}

type OTPConfig struct {
	TTL    string `yaml:"ttl"`
	Length int    `yaml:"length"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type OAuthConfig struct {
	GoogleClientID string `yaml:"google_client_id"`
	AppleClientID  string `yaml:"apple_client_id"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	OAuth    OAuthConfig    `yaml:"oauth"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	CORS     struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	TokenTTL        time.Duration
	OTPTTL          time.Duration
	OTPLength       int
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	GoogleClientID  string
	AppleClientID   string
	CasbinModelPath string
	CORSOrigins     []string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml when present and falls back to environment
// variables for anything the file leaves empty. Provider credentials are
// optional: a missing Twilio or Google configuration degrades that one login
// method instead of failing startup.
func Load() (*Config, error) {
	var file ConfigFile
	path := env("ILAVA_CONFIG", "config/config.yml")
	if bytes, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(bytes, &file); err != nil {
			return nil, fmt.Errorf("could not parse config yaml: %w", err)
		}
	}

	cfg := &Config{
		Port:            pick(strconv.Itoa(file.App.Port), env("PORT", "5000")),
		GinMode:         pick(file.App.GinMode, env("GIN_MODE", "release")),
		DSN:             pick(file.Database.DSN, os.Getenv("DATABASE_URL")),
		RedisAddr:       pick(file.Redis.Addr, env("REDIS_ADDR", "localhost:6379")),
		RedisPassword:   pick(file.Redis.Password, os.Getenv("REDIS_PASSWORD")),
		RedisDB:         file.Redis.DB,
		JWTSecret:       pick(file.JWT.Secret, env("JWT_SECRET", "ilava-jwt-secret-fallback-key-2024")),
		JWTIssuer:       pick(file.JWT.Issuer, env("JWT_ISSUER", "ilava")),
		OTPLength:       file.OTP.Length,
		TwilioSID:       pick(file.Twilio.AccountSID, os.Getenv("TWILIO_ACCOUNT_SID")),
		TwilioToken:     pick(file.Twilio.AuthToken, os.Getenv("TWILIO_AUTH_TOKEN")),
		TwilioFrom:      pick(file.Twilio.FromNumber, os.Getenv("TWILIO_PHONE_NUMBER")),
		GoogleClientID:  pick(file.OAuth.GoogleClientID, os.Getenv("GOOGLE_CLIENT_ID")),
		AppleClientID:   pick(file.OAuth.AppleClientID, os.Getenv("APPLE_CLIENT_ID")),
		CasbinModelPath: pick(file.Casbin.ModelPath, env("CASBIN_MODEL_PATH", "config/casbin_model.conf")),
		CORSOrigins:     file.CORS.Origins,
	}

	if cfg.Port == "0" {
		cfg.Port = env("PORT", "5000")
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required (database.dsn or DATABASE_URL)")
	}

	var err error
	if cfg.TokenTTL, err = duration(file.JWT.TokenTTL, "JWT_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, fmt.Errorf("invalid token TTL: %w", err)
	}
	if cfg.OTPTTL, err = duration(file.OTP.TTL, "OTP_TTL", 10*time.Minute); err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	if cfg.OTPLength == 0 {
		cfg.OTPLength = 6
	}
	if db := os.Getenv("REDIS_DB"); db != "" && cfg.RedisDB == 0 {
		if cfg.RedisDB, err = strconv.Atoi(db); err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		if v := os.Getenv("CORS_ORIGINS"); v != "" {
			cfg.CORSOrigins = strings.Split(v, ",")
		} else {
			cfg.CORSOrigins = []string{"http://localhost:5173"}
		}
	}

	return cfg, nil
}

func pick(fileValue, envValue string) string {
	if fileValue != "" {
		return fileValue
	}
	return envValue
}

func duration(fileValue, envKey string, def time.Duration) (time.Duration, error) {
	raw := pick(fileValue, os.Getenv(envKey))
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}
