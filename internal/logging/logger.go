package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls how New builds the service logger.
type Options struct {
	Service string
	Level   string
	// File, when set, receives a rotated copy of every entry.
	File string
	JSON bool
}

// New builds a logrus logger tagged with the service name.
func New(opt Options) *logrus.Entry {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(opt.Level)))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if opt.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if opt.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opt.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	return logger.WithField("service", opt.Service)
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
