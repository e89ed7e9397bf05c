// Copyright 2025 Matthew Gall <me@matthewgall.dev>
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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with domain-specific methods
type Logger struct {
	*slog.Logger
}

// NewLogger creates a text-formatted logger
func NewLogger(debug bool) *Logger {
	handler := slog.NewTextHandler(os.Stderr, handlerOptions(debug))
	return &Logger{slog.New(handler)}
}

// NewJSONLogger creates a JSON-formatted logger
func NewJSONLogger(debug bool) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, handlerOptions(debug))
	return &Logger{slog.New(handler)}
}

// NewDiscardLogger creates a logger that drops everything
func NewDiscardLogger() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func handlerOptions(debug bool) *slog.HandlerOptions {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l.With("component", component)}
}

// WithMonth adds a month field to the logger
func (l *Logger) WithMonth(monthName string) *Logger {
	return &Logger{l.With("month", monthName)}
}

// LogSummaryStage logs summary stage completion
func (l *Logger) LogSummaryStage(stage string, value float64) {
	l.Debug("Summary stage completed",
		"stage", stage,
		"value", value,
	)
}

// LogDayBuckets logs the outcome of day bucketing
func (l *Logger) LogDayBuckets(measurements, days int) {
	l.Debug("Measurements bucketed by day",
		"measurements", measurements,
		"days", days,
	)
}

// LogNettleie logs a computed grid fee
func (l *Logger) LogNettleie(fastledd string, dagKwh, nattKwh float64) {
	l.Info("Grid fee computed from measurements",
		"fastledd", fastledd,
		"dag_kwh", fmt.Sprintf("%.1f", dagKwh),
		"natt_kwh", fmt.Sprintf("%.1f", nattKwh),
	)
}

// LogExport logs a written report or export
func (l *Logger) LogExport(format, path string) {
	l.Info("Report written",
		"format", format,
		"path", path,
	)
}

// UserMessage outputs a message directly to stdout (bypassing structured logging)
func (l *Logger) UserMessage(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
