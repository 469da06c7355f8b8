package internal

import (
	"fmt"
	"time"
)

// Config is loaded from the environment; see .env.example.
type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=3000"`
	SnapshotFilepath     string        `env:"SNAPSHOT_FILEPATH,required=true"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	SessionSecret        string        `env:"SESSION_SECRET,required=true"`
	SessionTTL           time.Duration `env:"SESSION_TTL,default=24h"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	HeartbeatInterval    time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	CensoredFilepath     string        `env:"CENSORED_FILEPATH"`
	CensoredMask         string        `env:"CENSORED_MASK,default=*"`
}

// MaskRune validates that the configured mask is a single character.
func (c Config) MaskRune() (rune, error) {
	r := []rune(c.CensoredMask)
	if len(r) != 1 {
		return 0, fmt.Errorf("CENSORED_MASK must be a single character, got %q", c.CensoredMask)
	}
	return r[0], nil
}
