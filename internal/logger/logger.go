package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a text logger at level. Unknown levels fall back to info and
// debug forces the debug level.
func New(level string, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.DateTime,
		FullTimestamp:   true,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		defer l.WithError(err).Warn("unknown log level, using info")
	}
	if debug && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)
	return l
}
