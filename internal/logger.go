package internal

import (
	"context"
	"eghl/entity"
	"eghl/services"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

const logWriteTimeout = 5 * time.Second

// Logger implements services.LogHandler on top of logrus.
// With a database set, warnings and errors are also stored.
type Logger struct {
	entry *logrus.Entry
}

func NewLogger(category string, debug bool, database services.Database) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	if database != nil {
		log.AddHook(&databaseHook{database: database})
	}
	return &Logger{entry: log.WithField("category", category)}
}

func (l *Logger) Debug(text string) {
	l.entry.Debug(text)
}

func (l *Logger) Info(text string) {
	l.entry.Info(text)
}

func (l *Logger) Warn(text string) {
	l.entry.Warn(text)
}

func (l *Logger) Error(text string, err error) {
	l.entry.WithError(err).Error(text)
}

func (l *Logger) Alert(text string, err error) {
	l.entry.WithError(err).WithField("security", true).Error(text)
}

// databaseHook writes warn-and-above entries as log messages.
type databaseHook struct {
	database services.Database
}

func (h *databaseHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (h *databaseHook) Fire(e *logrus.Entry) error {
	message := &entity.LogMessage{
		Time:  e.Time,
		Level: e.Level.String(),
		Text:  e.Message,
	}
	if category, ok := e.Data["category"].(string); ok {
		message.Category = category
	}
	if err, ok := e.Data[logrus.ErrorKey].(error); ok && err != nil {
		message.Error = err.Error()
	}
	if security, ok := e.Data["security"].(bool); ok && security {
		message.Level = "alert"
	}
	ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
	defer cancel()
	return h.database.WriteLogMessage(ctx, message)
}
