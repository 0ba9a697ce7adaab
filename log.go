package vaxis

import (
	"io"

	"github.com/sirupsen/logrus"
)

// logger is the package logger. It discards everything until SetLogger
// installs a destination.
var logger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// SetLogger directs the library's internal logging (unknown input sequences,
// capability latching, swallowed teardown errors) to l.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}
