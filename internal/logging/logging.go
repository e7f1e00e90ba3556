// Package logging builds the logrus logger handed to the store and the CLI.
//
// There is no package-level logger: main builds one and passes it down.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configure New.
type Options struct {
	// Level is a logrus level name. Invalid names fall back to info with a
	// warning.
	Level string

	// Environment selects the formatter: JSON for production and staging,
	// text otherwise.
	Environment string

	// Verbose forces debug level.
	Verbose bool

	// Output receives log lines. Command output goes to stdout, so this is
	// normally stderr.
	Output io.Writer
}

// New creates a configured logger.
func New(opts Options) *logrus.Logger {
	log := logrus.New()
	if opts.Output != nil {
		log.SetOutput(opts.Output)
	}

	if IsStructured(opts.Environment) {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("invalid log level '%s', defaulting to 'info': %v", opts.Level, err)
	} else {
		log.SetLevel(level)
	}
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	log.Debugf("log level set to: %s", log.GetLevel())
	return log
}

// IsStructured reports whether env logs JSON.
func IsStructured(env string) bool {
	switch strings.ToLower(env) {
	case "production", "staging":
		return true
	default:
		return false
	}
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
