package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// configureLogging applies LOG_LEVEL and switches to JSON output in production
func configureLogging(level, environment string) {
	log.SetOutput(os.Stderr)

	if environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, using info", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
