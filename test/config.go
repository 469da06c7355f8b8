package test

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// STREAM_TIMEOUT bounds how long the scenario waits for a pushed event
	StreamTimeout time.Duration `envconfig:"STREAM_TIMEOUT" default:"5s"`
	// CONNECTION_BUFFER_SIZE mirrors the server-side per-stream buffer
	ConnectionBufferSize int `envconfig:"CONNECTION_BUFFER_SIZE" default:"8"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
