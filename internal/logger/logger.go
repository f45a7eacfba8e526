package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Entry = logrus.Entry

type Fields = logrus.Fields

// Init configures Log for JSON output on stdout. DEBUG=true or debug enables
// debug level.
func Init(debug bool) {
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	Log.SetOutput(os.Stdout)

	if debug || os.Getenv("DEBUG") == "true" {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}

// Component returns an entry tagged with the component name.
func Component(name string) *Entry {
	return Log.WithField("component", name)
}

// Discard silences Log; used by tests and the render command.
func Discard() {
	Log.SetOutput(io.Discard)
}
