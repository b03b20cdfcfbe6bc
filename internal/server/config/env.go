package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Only set
// variables override; empty values are ignored. cmd/server loads a .env
// file before this runs, so local development keys can live there.
func parseEnv(config *Config) {
	if v := os.Getenv("ENDPOINT_ADDR"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("STORE_DSN"); v != "" {
		config.StoreDSN = v
	}
	if v := os.Getenv("STORE_QUOTA"); v != "" {
		if quota, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.StoreQuota = quota
		}
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v := os.Getenv("ADMIN_PASSCODE"); v != "" {
		config.AdminPasscode = v
	}
	if v := os.Getenv("GENAI_BASE_URL"); v != "" {
		config.GenAIBaseURL = v
	}
	if v := os.Getenv("GENAI_API_KEY"); v != "" {
		config.GenAIAPIKey = v
	}
	if v := os.Getenv("QR_BASE_URL"); v != "" {
		config.QRBaseURL = v
	}
	if v := os.Getenv("S3_ROOT_USER"); v != "" {
		config.S3RootUser = v
	}
	if v := os.Getenv("S3_ROOT_PASSWORD"); v != "" {
		config.S3RootPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		config.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		config.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		config.S3BaseEndpoint = v
	}
}
