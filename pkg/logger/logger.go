/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Level represents the severity level of log messages
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = map[Level]string{
	TraceLevel: "TRACE",
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
}

var levelColors = map[Level]*color.Color{
	TraceLevel: color.New(color.FgWhite),
	DebugLevel: color.New(color.FgCyan),
	InfoLevel:  color.New(color.FgGreen),
	WarnLevel:  color.New(color.FgYellow),
	ErrorLevel: color.New(color.FgRed),
}

var dryRunColor = color.New(color.FgMagenta)

// String returns the string representation of the level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel maps a flag value onto a Level. Unknown values fall back to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Config holds the logger configuration
type Config struct {
	Level     Level
	UseColor  bool
	JSON      bool
	Component string
	// DryRun marks every pretty line while a sync preview runs.
	DryRun bool
}

// Logger writes leveled entries to stderr, pretty or as JSON lines.
type Logger struct {
	config Config
	logger *log.Logger
}

var defaultLogger *Logger

// New builds a logger writing to w.
func New(w io.Writer, config Config) *Logger {
	if config.Component == "" {
		config.Component = "folio"
	}
	return &Logger{config: config, logger: log.New(w, "", 0)}
}

// Initialize sets up the default logger
func Initialize(config Config) error {
	defaultLogger = New(os.Stderr, config)
	return nil
}

// SetDryRun toggles the dry-run marker on the default logger.
func SetDryRun(enabled bool) {
	if defaultLogger != nil {
		defaultLogger.config.DryRun = enabled
	}
}

// Log writes a log message
func (l *Logger) Log(level Level, message string, fields ...Field) {
	if level < l.config.Level {
		return
	}

	entry := LogEntry{
		Time:      time.Now(),
		Level:     level.String(),
		Message:   message,
		Component: l.config.Component,
		DryRun:    l.config.DryRun,
	}
	if len(fields) > 0 {
		entry.Fields = make(map[string]interface{}, len(fields))
		for _, field := range fields {
			entry.Fields[field.Key] = field.Value
		}
	}

	if level <= DebugLevel {
		if _, file, line, ok := runtime.Caller(2); ok {
			entry.File = file
			entry.Line = line
		}
	}

	if l.config.JSON {
		b, err := json.Marshal(entry)
		if err != nil {
			l.logger.Printf("%s [ERROR] %s: failed to encode log entry: %v", entry.Time.Format(time.DateTime), entry.Component, err)
			return
		}
		l.logger.Print(string(b))
		return
	}
	l.logger.Print(l.formatPretty(level, entry))
}

// formatPretty renders "<time> [LEVEL] component: [DRY-RUN] message {k=v, ...} (file:line)".
func (l *Logger) formatPretty(level Level, entry LogEntry) string {
	var b strings.Builder

	b.WriteString(entry.Time.Format(time.DateTime))

	name := entry.Level
	if l.config.UseColor {
		if c, ok := levelColors[level]; ok {
			name = c.Sprint(name)
		}
	}
	fmt.Fprintf(&b, " [%s]", name)

	if entry.Component != "" {
		fmt.Fprintf(&b, " %s:", entry.Component)
	}

	if entry.DryRun {
		marker := "[DRY-RUN]"
		if l.config.UseColor {
			marker = dryRunColor.Sprint(marker)
		}
		b.WriteString(" " + marker)
	}

	b.WriteString(" " + entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, entry.Fields[k])
		}
		b.WriteString(" {" + strings.Join(parts, ", ") + "}")
	}

	if entry.File != "" {
		fmt.Fprintf(&b, " (%s:%d)", entry.File, entry.Line)
	}
	return b.String()
}

// Field represents a structured field in a log entry
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// LogEntry is one JSON log line.
type LogEntry struct {
	Time      time.Time              `json:"time"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	DryRun    bool                   `json:"dry_run,omitempty"`
	File      string                 `json:"file,omitempty"`
	Line      int                    `json:"line,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// fallback is used before Initialize runs.
func fallback(level Level, message string) {
	_, _ = fmt.Fprintf(os.Stderr, "[%s] folio: %s\n", level, message)
}

func Trace(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(TraceLevel, message, fields...)
	}
}

func Debug(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(DebugLevel, message, fields...)
	}
}

func Info(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(InfoLevel, message, fields...)
		return
	}
	fallback(InfoLevel, message)
}

func Warn(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(WarnLevel, message, fields...)
		return
	}
	fallback(WarnLevel, message)
}

func Error(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(ErrorLevel, message, fields...)
		return
	}
	fallback(ErrorLevel, message)
}

// SetOutput sets the output writer for the logger
func SetOutput(w io.Writer) {
	if defaultLogger != nil {
		defaultLogger.logger.SetOutput(w)
	}
}
