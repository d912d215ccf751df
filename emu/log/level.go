package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level = logrus.Level

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

func init() {
	// Filtering is done per-module, let everything through logrus.
	logrus.SetLevel(logrus.DebugLevel)
}

// Disable discards every log entry, warnings and errors included.
func Disable() {
	logrus.SetOutput(io.Discard)
}
