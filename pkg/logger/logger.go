package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger: JSON in production, text
// otherwise.
func Init(env, level string) {
	logrus.SetOutput(os.Stdout)
	if env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	logrus.WithField("env", env).Info("Logger initialized")
}
