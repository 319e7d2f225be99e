package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// BoostrapLogger installs the process logger with text output on stdout at debug level.
// Configure adjusts it once the config is read.
func BoostrapLogger() {
	Log = newLogger(os.Stdout)
}

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.Out = out
	l.Level = logrus.DebugLevel
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.SetReportCaller(true)
	return l
}

// Configure switches level and output format ("text" or "json") of the global logger.
// Unknown values keep the current setting.
func Configure(level, format string) {
	if Log == nil {
		return
	}

	switch format {
	case "json":
		// CloudWatch indexes JSON lines, lambda deployments use this
		Log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
	default:
		Log.Warnf("LOG: unknown format %q, keeping text", format)
	}

	if level == "" {
		return
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("LOG: unknown level %q, keeping %s", level, Log.GetLevel())
		return
	}
	Log.SetLevel(parsed)
}
