// Package logger wires command line logging options into the global zerolog
// logger.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a go-flags option group controlling log verbosity and format.
type Logger struct {
	Level  string `long:"log-level"  env:"LOG_LEVEL"  description:"Logging level" default:"info" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	Format string `long:"log-format" env:"LOG_FORMAT" description:"Logging format" default:"text" choice:"text" choice:"json"`
}

// Setup applies the options to the global zerolog logger.
func (l *Logger) Setup() {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if l.Format == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
