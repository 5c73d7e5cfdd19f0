package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/flatauth/internal/flagx"
)

var knownFlags = []string{
	"-a", "-g", "-s", "-f", "-w", "-d",
	"-b", "-k", "-r", "-e", "-u", "-p",
	"-o", "-l", "-m", "-t", "-i",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-g string   gRPC health bind address, "" disables
//	-s string   storage backend: file | memory | postgres | s3
//	-f string   users file for the file backend
//	-w string   static files directory
//	-d string   PostgreSQL DSN
//	-b string   S3 bucket
//	-k string   S3 object key
//	-r string   S3 region
//	-e string   S3 base endpoint
//	-u string   S3 root user
//	-p string   S3 root password
//	-o bool     fail open on unreadable store content (use -o=false to disable)
//	-l string   log level
//	-m string   log format: json | text
//	-t int      shutdown timeout, seconds
//	-i int      health probe interval, seconds
//
// Only the flags above are picked out of args, so a -c/-config flag handled
// by parseJson does not trip this flag set.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run HTTP server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port to run gRPC health server")
	fs.StringVar(&config.Storage, "s", config.Storage, "storage backend")
	fs.StringVar(&config.UsersFile, "f", config.UsersFile, "users file")
	fs.StringVar(&config.StaticDir, "w", config.StaticDir, "static files directory")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Key, "k", config.S3Key, "S3 object key")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.BoolVar(&config.FailOpen, "o", config.FailOpen, "fail open on unreadable store")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "m", config.LogFormat, "log format")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	healthInterval := fs.Int("i", int(config.HealthInterval.Seconds()), "health probe interval (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
	config.HealthInterval = time.Duration(*healthInterval) * time.Second
}
