package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/flatauth/internal/flagx"
	"github.com/dmitrijs2005/flatauth/internal/timex"
)

// JsonConfig is the on-disk shape of a config file. Durations use
// timex.Duration so both "5s" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	GRPCAddr        string         `json:"grpc_addr"`
	Storage         string         `json:"storage"`
	UsersFile       string         `json:"users_file"`
	StaticDir       string         `json:"static_dir"`
	DatabaseDSN     string         `json:"database_dsn"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Key           string         `json:"s3_key"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	FailOpen        bool           `json:"fail_open"`
	LogLevel        string         `json:"log_level"`
	LogFormat       string         `json:"log_format"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
	HealthInterval  timex.Duration `json:"health_interval"`
}

// parseJson overlays values from the file named by -c / -config onto config.
// Keys absent from the file keep their current value. Without the flag nothing
// is loaded; an unreadable file or invalid JSON panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{
		HTTPAddr:        config.HTTPAddr,
		GRPCAddr:        config.GRPCAddr,
		Storage:         config.Storage,
		UsersFile:       config.UsersFile,
		StaticDir:       config.StaticDir,
		DatabaseDSN:     config.DatabaseDSN,
		S3Bucket:        config.S3Bucket,
		S3Key:           config.S3Key,
		S3Region:        config.S3Region,
		S3BaseEndpoint:  config.S3BaseEndpoint,
		S3RootUser:      config.S3RootUser,
		S3RootPassword:  config.S3RootPassword,
		FailOpen:        config.FailOpen,
		LogLevel:        config.LogLevel,
		LogFormat:       config.LogFormat,
		ShutdownTimeout: timex.Duration{Duration: config.ShutdownTimeout},
		HealthInterval:  timex.Duration{Duration: config.HealthInterval},
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.HTTPAddr = c.HTTPAddr
	config.GRPCAddr = c.GRPCAddr
	config.Storage = c.Storage
	config.UsersFile = c.UsersFile
	config.StaticDir = c.StaticDir
	config.DatabaseDSN = c.DatabaseDSN
	config.S3Bucket = c.S3Bucket
	config.S3Key = c.S3Key
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.FailOpen = c.FailOpen
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.ShutdownTimeout = c.ShutdownTimeout.Duration
	config.HealthInterval = c.HealthInterval.Duration
}
