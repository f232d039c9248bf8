package config

import (
	"flag"
	"os"
	"time"

	"dialog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s int      session validity, hours
//	-i int      session cleanup interval, minutes
//	-o string   comma-separated CORS origins
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-i", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	sessionValidityHours := fs.Int("s", int(config.SessionValidityDuration.Hours()), "session validity (in hours)")
	cleanupIntervalMinutes := fs.Int("i", int(config.SessionCleanupInterval.Minutes()), "session cleanup interval (in minutes)")

	origins := fs.String("o", "", "comma-separated allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidityHours) * time.Hour
	config.SessionCleanupInterval = time.Duration(*cleanupIntervalMinutes) * time.Minute

	if *origins != "" {
		config.AllowedOrigins = splitOrigins(*origins)
	}
}
