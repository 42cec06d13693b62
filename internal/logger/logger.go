// Copyright 2023 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/adityaanilraut/go-compute-bench/cfg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Messages logged while a run is in flight go through a buffered writer so
// that logging never stalls a worker.
const logBufferSize = 1024

var (
	defaultLoggerFactory *loggerFactory
	defaultLogger        *slog.Logger
)

// init initializes the logger factory to use stdout.
func init() {
	defaultLoggerFactory = &loggerFactory{
		file:  nil,
		level: cfg.InfoLogSeverity,
	}
	defaultLogger = defaultLoggerFactory.newLogger(cfg.InfoLogSeverity)
}

// InitLogFile initializes the logger factory to create loggers that print to
// a log file with rotation. In case of an empty file path, logs keep going to
// stdout.
func InitLogFile(newLogConfig cfg.LoggingConfig) error {
	var f *os.File
	var fileWriter *AsyncLogger
	var err error
	if newLogConfig.FilePath != "" {
		f, err = os.OpenFile(
			string(newLogConfig.FilePath),
			os.O_WRONLY|os.O_CREATE|os.O_APPEND,
			0644,
		)
		if err != nil {
			return err
		}
		fileWriter = NewAsyncLogger(&lumberjack.Logger{
			Filename:   f.Name(),
			MaxSize:    int(newLogConfig.LogRotate.MaxFileSizeMb),
			MaxBackups: int(newLogConfig.LogRotate.BackupFileCount),
			Compress:   newLogConfig.LogRotate.Compress,
		}, logBufferSize)
	}

	defaultLoggerFactory = &loggerFactory{
		file:       f,
		fileWriter: fileWriter,
		format:     newLogConfig.Format,
		level:      newLogConfig.Severity,
		logRotate:  newLogConfig.LogRotate,
	}
	defaultLogger = defaultLoggerFactory.newLogger(newLogConfig.Severity)

	return nil
}

// SetLogFormat updates the log format of the default logger.
func SetLogFormat(format string) {
	if format == defaultLoggerFactory.format {
		return
	}
	defaultLoggerFactory.format = format
	defaultLogger = defaultLoggerFactory.newLogger(defaultLoggerFactory.level)
}

// Close flushes any buffered log messages and closes the log file when
// necessary.
func Close() {
	if w := defaultLoggerFactory.fileWriter; w != nil {
		_ = w.Close()
		defaultLoggerFactory.fileWriter = nil
	}
	if f := defaultLoggerFactory.file; f != nil {
		f.Close()
		defaultLoggerFactory.file = nil
	}
}

// Tracef prints the message with TRACE severity in the specified format.
func Tracef(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, v...))
}

// Debugf prints the message with DEBUG severity in the specified format.
func Debugf(format string, v ...interface{}) {
	defaultLogger.Debug(fmt.Sprintf(format, v...))
}

// Infof prints the message with INFO severity in the specified format.
func Infof(format string, v ...interface{}) {
	defaultLogger.Info(fmt.Sprintf(format, v...))
}

// Warnf prints the message with WARNING severity in the specified format.
func Warnf(format string, v ...interface{}) {
	defaultLogger.Warn(fmt.Sprintf(format, v...))
}

// Errorf prints the message with ERROR severity in the specified format.
func Errorf(format string, v ...interface{}) {
	defaultLogger.Error(fmt.Sprintf(format, v...))
}

// Fatal prints an error log and exits with non-zero exit code.
func Fatal(format string, v ...interface{}) {
	Errorf(format, v...)
	os.Exit(1)
}

type loggerFactory struct {
	// If nil, log to stdout. Otherwise, log to this file through fileWriter.
	file       *os.File
	fileWriter *AsyncLogger
	format     string
	level      cfg.LogSeverity
	logRotate  cfg.LogRotateLoggingConfig
}

func (f *loggerFactory) newLogger(level cfg.LogSeverity) *slog.Logger {
	var programLevel = new(slog.LevelVar)
	logger := slog.New(f.handler(programLevel, ""))
	slog.SetDefault(logger)
	setLoggingLevel(level, programLevel)
	return logger
}

func (f *loggerFactory) createJsonOrTextHandler(writer io.Writer, levelVar *slog.LevelVar, prefix string) slog.Handler {
	if f.format == "text" {
		return slog.NewTextHandler(writer, getHandlerOptions(levelVar, prefix, f.format))
	}
	// An empty format means json.
	return slog.NewJSONHandler(writer, getHandlerOptions(levelVar, prefix, "json"))
}

func (f *loggerFactory) handler(levelVar *slog.LevelVar, prefix string) slog.Handler {
	if f.fileWriter != nil {
		return f.createJsonOrTextHandler(f.fileWriter, levelVar, prefix)
	}
	return f.createJsonOrTextHandler(os.Stdout, levelVar, prefix)
}
