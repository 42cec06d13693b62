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
	"fmt"
	"log/slog"
	"time"

	"github.com/adityaanilraut/go-compute-bench/cfg"
)

const (
	// LevelTrace value is set to -8, so that all the logs are logged.
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	// LevelOff value is set to 12, so that nothing is logged.
	LevelOff = slog.Level(12)

	messageKey  = "message"
	severityKey = "severity"

	// Formats the timestamp like "timestamp":{"seconds":1704697907,"nanos":553918512}.
	timestampKey        = "timestamp"
	timestampSecondsKey = "seconds"
	timestampNanosKey   = "nanos"
)

func setLoggingLevel(level cfg.LogSeverity, programLevel *slog.LevelVar) {
	switch level {
	// Logs having severity >= the configured value will be logged.
	case cfg.TraceLogSeverity:
		programLevel.Set(LevelTrace)
	case cfg.DebugLogSeverity:
		programLevel.Set(LevelDebug)
	case cfg.WarningLogSeverity:
		programLevel.Set(LevelWarn)
	case cfg.ErrorLogSeverity:
		programLevel.Set(LevelError)
	case cfg.OffLogSeverity:
		programLevel.Set(LevelOff)
	default:
		programLevel.Set(LevelInfo)
	}
}

func getHandlerOptions(levelVar *slog.LevelVar, prefix string, format string) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		// Set log level to the configured value.
		Level: levelVar,

		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Change key from "msg" to "message" and add prefix to the message.
			if a.Key == slog.MessageKey {
				message := fmt.Sprintf("%s%v", prefix, a.Value)
				return slog.Attr{
					Key:   messageKey,
					Value: slog.StringValue(message),
				}
			}

			// Change key from "level" to "severity", handling the custom
			// level values.
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				var levelLabel string
				switch level {
				case LevelTrace:
					levelLabel = "TRACE"
				case LevelWarn:
					levelLabel = "WARNING"
				case LevelOff:
					levelLabel = "OFF"
				default:
					levelLabel = level.String()
				}
				return slog.Attr{
					Key:   severityKey,
					Value: slog.StringValue(levelLabel),
				}
			}

			if a.Key == slog.TimeKey {
				if format == "json" {
					currTime := a.Value.Time()
					timestamp := slog.GroupValue(
						slog.Attr{Key: timestampSecondsKey, Value: slog.Int64Value(currTime.Unix())},
						slog.Attr{Key: timestampNanosKey, Value: slog.IntValue(currTime.Nanosecond())},
					)
					return slog.Attr{Key: timestampKey, Value: timestamp}
				}
				// Generating time in the format: 01/02/2006 03:04:05.000000
				return slog.Attr{
					Key:   slog.TimeKey,
					Value: slog.StringValue(a.Value.Time().Round(time.Microsecond).Format("01/02/2006 03:04:05.000000")),
				}
			}
			return a
		},
	}
}
