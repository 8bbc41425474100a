package logger

import (
	"log"
	"os"
)

// Logger is a leveled logger constructed once in main and handed to the
// services that need it. Debug output is only emitted in development.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
	debug *log.Logger

	debugEnabled bool
}

func New(environment string) *Logger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Logger{
		info:         log.New(os.Stdout, "INFO: ", flags),
		warn:         log.New(os.Stdout, "WARN: ", flags),
		error:        log.New(os.Stderr, "ERROR: ", flags),
		debug:        log.New(os.Stdout, "DEBUG: ", flags),
		debugEnabled: environment == "development",
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.info.Printf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.warn.Printf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.error.Printf(format, v...)
}

func (l *Logger) Debug(format string, v ...interface{}) {
	if l.debugEnabled {
		l.debug.Printf(format, v...)
	}
}
