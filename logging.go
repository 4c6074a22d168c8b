package main

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("pangkas")

// InitLogger receives the log level to be set in go-logging as a string. This
// method parses the string and sets the level on a formatted stdout backend.
// If the level string is not valid an error is returned.
func InitLogger(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stdout, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}

// SetLogLevel re-applies the level at runtime (config file watch).
func SetLogLevel(logLevel string) error {
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	logging.SetLevel(logLevelCode, "")
	return nil
}
