package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

var log = logrus.New()

func init() {
	log.SetOutput(os.Stdout)
	Configure(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"))
}

// Configure switches the formatter (text in development, JSON elsewhere) and
// sets the level. An unparsable level keeps info.
func Configure(environment, level string) {
	if environment == "" || environment == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}

func Info(format string, v ...interface{}) {
	log.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	log.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	log.Warnf(format, v...)
}

func WithFields(fields Fields) *logrus.Entry {
	return log.WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return log.WithError(err)
}

// Logger exposes the underlying logrus instance, e.g. to redirect output in tests.
func Logger() *logrus.Logger {
	return log
}
