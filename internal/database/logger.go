package database

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormWriter sends gorm's log lines to logrus. At logger.Error level gorm
// only emits failed statements, so every line is an error.
type gormWriter struct {
	log logrus.FieldLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Errorf(format, args...)
}

// newGormLogger reports failed queries through log. Lookups that find
// nothing are expected (unknown email at signup and login) and are not logged.
func newGormLogger(log logrus.FieldLogger) logger.Interface {
	return logger.New(gormWriter{log: log.WithField("component", "gorm")}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Error,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
