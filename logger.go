package nnclient

import (
	"io"
	"log"
	"os"
)

type LogLevel int

const (
	Info LogLevel = iota
	Warning
	Error
	Fatal
)

var logLevelStrings = map[LogLevel]string{
	Info:    "[Info]",
	Warning: "[Warning]",
	Error:   "[Error]",
	Fatal:   "[Fatal]",
}

type Logger struct {
	logFile *os.File
	logger  *log.Logger
}

// NewLogger creates a logger writing to stdout, and additionally to
// logFilePath when it is non-empty. A log file that cannot be opened is
// reported and skipped rather than treated as fatal.
func NewLogger(logFilePath string) (*Logger, error) {
	if logFilePath == "" {
		return &Logger{
			logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
		}, nil
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		log.New(os.Stdout, "", log.Ldate|log.Ltime).Printf("[Error] Unable to open log file: %v\n", err)
		return &Logger{
			logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
		}, nil
	}

	return &Logger{
		logFile: logFile,
		logger:  log.New(io.MultiWriter(os.Stdout, logFile), "", log.Ldate|log.Ltime),
	}, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.logFile == nil {
		return nil
	}
	return l.logFile.Close()
}

func (l *Logger) log(level LogLevel, format string, v ...interface{}) {
	if prefix, ok := logLevelStrings[level]; ok {
		l.logger.Printf(prefix+" "+format, v...)
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log(Info, format, v...)
}

func (l *Logger) Warning(format string, v ...interface{}) {
	l.log(Warning, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log(Error, format, v...)
}

func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(Fatal, format, v...)
	os.Exit(1)
}
