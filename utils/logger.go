// Package utils carries the logging setup shared by the CLI and the
// receiver.
package utils

import (
	log "github.com/sirupsen/logrus"
)

var isVerbose bool

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	})
}

// SetVerbose switches debug-level logging on or off.
func SetVerbose(verbose bool) {
	isVerbose = verbose
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func IsVerbose() bool {
	return isVerbose
}

// Verbose logs only when verbose output is enabled.
func Verbose(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	log.Infof(format, args...)
}
