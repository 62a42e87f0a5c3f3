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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation_modified",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "src/App.jsx",
					Job:          "theme",
					IsModified:   true,
					Replacements: 3,
				})
			},
			wantLogs: []string{
				"⟳ src/App.jsx",
				"3 replacements",
			},
		},
		{
			name: "log_file_operation_dry_run",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "src/App.jsx",
					Job:          "theme",
					IsModified:   true,
					IsDryRun:     true,
					Replacements: 3,
				})
			},
			wantLogs: []string{
				"? src/App.jsx",
				"would change (3)",
			},
		},
		{
			name: "log_file_operation_unchanged",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path: "src/index.js",
					Job:  "theme",
				})
			},
			wantLogs: []string{
				"• src/index.js",
				"unchanged",
			},
		},
		{
			name: "log_job_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartJobOperation(context.Background(), JobOperation{
					Name:  "theme",
					Scope: "line",
					Root:  "web/src",
					Rules: 36,
				})
			},
			wantLogs: []string{
				"[rewriting web/src]",
				"◆ theme • 36 rules, line scope",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("scanned %d files", 12)
				logger.Successf("finished %s", "theme")
			},
			wantLogs: []string{
				"ℹ️  scanned 12 files",
				"✅ finished theme",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("applying rewrite jobs")
			},
			wantLogs: []string{
				"barkfix • applying rewrite jobs",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, zerolog.Disabled)

			tt.op(t, logger)

			output := buf.String()
			for _, want := range tt.wantLogs {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.Disabled)

	ctx := NewContext(context.Background(), logger)
	require.Equal(t, logger, FromContext(ctx))

	assert.Panics(t, func() {
		FromContext(context.Background())
	})
}

func TestEndJobOperation_ResetsState(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	logger := New(&buf, zerolog.Disabled)

	logger.StartJobOperation(context.Background(), JobOperation{Name: "theme", Scope: "line", Root: ".", Rules: 1})
	logger.LogFileOperation(context.Background(), FileOperation{Path: "a.jsx", Job: "theme", IsModified: true, Replacements: 1})
	logger.EndJobOperation(context.Background())

	// ending twice is harmless
	logger.EndJobOperation(context.Background())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
}
