// Package loggers logs events
package loggers

import (
	"log"
	"os"

	"github.com/sirupsen/logrus"
)

// Base is the logger every level logger writes through
var Base = logrus.New()

// Types of loggers
var (
	DebugLogger = log.New(Base.WriterLevel(logrus.DebugLevel), "", 0)
	ErrorLogger = log.New(Base.WriterLevel(logrus.ErrorLevel), "", 0)
	InfoLogger  = log.New(Base.WriterLevel(logrus.InfoLevel), "", 0)
)

func init() {
	Base.SetOutput(os.Stderr)
	Base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetLevel sets the minimum level by name (debug, info, warn, error)
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Base.SetLevel(lvl)
	return nil
}
