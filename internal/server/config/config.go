// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the PortraitStudio server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - StoreDSN: blob store DSN (memory://, file://dir, sqlite:path, postgres://...).
//   - StoreQuota: total store capacity in bytes; 0 disables the limit.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - AdminPasscode: shared secret gating license code generation.
//   - GenAIBaseURL / GenAIAPIKey: portrait generation service settings.
//   - QRBaseURL: create-qr-code endpoint used by badge and QR tools.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: portrait archive settings; an
//     empty bucket disables archival.
type Config struct {
	EndpointAddr                string
	StoreDSN                    string
	StoreQuota                  int64
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	AdminPasscode               string
	GenAIBaseURL                string
	GenAIAPIKey                 string
	QRBaseURL                   string
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.StoreDSN = "sqlite:portraitstudio.db"
	c.StoreQuota = 0
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.AdminPasscode = "AI2024"
	c.GenAIBaseURL = "http://127.0.0.1:8090"
	c.GenAIAPIKey = ""
	c.QRBaseURL = "https://api.qrserver.com/v1/create-qr-code/"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
