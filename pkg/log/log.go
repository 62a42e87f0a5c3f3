// Copyright 2025 BarkBase
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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 45 // Base width for filename
)

// 🎯 FileOperation represents one rewritten file for logging
type FileOperation struct {
	Path         string // File path, relative to the job root
	Job          string // Job that processed the file
	IsModified   bool   // Whether the file changed
	IsDryRun     bool   // Whether the change was held back
	IsFailed     bool   // Whether processing failed
	Replacements int    // Number of replacements made
}

// 📦 JobOperation represents a rewrite job for logging
type JobOperation struct {
	Name  string // Job name
	Scope string // line or whole-file
	Root  string // Directory walked
	Rules int    // Number of rules in the set
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentJob *JobOperation
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// Zerolog returns the underlying structured logger, for context embedding
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
		status = "failed"
	case op.IsModified && op.IsDryRun:
		symbol = '?'
		symbolColor = color.FgYellow
		status = fmt.Sprintf("would change (%d)", op.Replacements)
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = fmt.Sprintf("%d replacements", op.Replacements)
	default:
		symbol = '•'
		symbolColor = color.FgCyan
		status = "unchanged"
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		status)
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("job", op.Job).
		Bool("is_modified", op.IsModified).
		Bool("is_dry_run", op.IsDryRun).
		Bool("is_failed", op.IsFailed).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 StartJobOperation starts a new rewrite job
func (l *Logger) StartJobOperation(ctx context.Context, op JobOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentJob = &op
	l.operations = nil

	fmt.Fprintf(l.console, "[rewriting %s]\n",
		color.New(color.FgCyan).Sprint(op.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d rules, %s scope", op.Rules, op.Scope))

	l.zlog.Info().
		Str("job", op.Name).
		Str("scope", op.Scope).
		Str("root", op.Root).
		Int("rules", op.Rules).
		Msg("starting rewrite job")
}

// 📝 EndJobOperation ends the current rewrite job
func (l *Logger) EndJobOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentJob == nil {
		return
	}

	l.zlog.Info().
		Str("job", l.currentJob.Name).
		Int("files", len(l.operations)).
		Msg("rewrite job complete")

	l.currentJob = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("barkfix")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
