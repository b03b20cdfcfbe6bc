package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/portraitstudio/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   blob store DSN
//	-q int      store quota in bytes (0 = unlimited)
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-w string   admin passcode for license generation
//	-g string   generation service base URL
//	-k string   generation service API key
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-r string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-q", "-s", "-t", "-w", "-g", "-k", "-u", "-p", "-b", "-r", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.StoreDSN, "d", config.StoreDSN, "blob store DSN")
	fs.Int64Var(&config.StoreQuota, "q", config.StoreQuota, "store quota in bytes")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.AdminPasscode, "w", config.AdminPasscode, "admin passcode")
	fs.StringVar(&config.GenAIBaseURL, "g", config.GenAIBaseURL, "generation service base URL")
	fs.StringVar(&config.GenAIAPIKey, "k", config.GenAIAPIKey, "generation service API key")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
