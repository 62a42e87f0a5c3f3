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

// Package report accumulates per-file rewrite outcomes and renders the run
// summary. The accumulator is safe for concurrent use by worker goroutines.
package report

import (
	"sort"
	"sync"
)

// 📄 FileOutcome is the result of processing one file in one job
type FileOutcome struct {
	Path     string
	Job      string
	Changes  int
	RuleHits map[string]int
	Written  bool // false for dry runs and unchanged files
	Err      error
}

// 📊 FileCount pairs a path with its replacement count, for ranking
type FileCount struct {
	Path  string
	Count int
}

// 🚨 FileError records a file whose processing failed
type FileError struct {
	Path string
	Job  string
	Err  error
}

// 🧮 Summary accumulates outcomes across all jobs and workers
type Summary struct {
	mu           sync.Mutex
	scanned      int
	changedFiles int
	totalChanges int
	ruleTotals   map[string]int
	fileChanges  map[string]int
	errs         []FileError
}

// New returns an empty summary
func New() *Summary {
	return &Summary{
		ruleTotals:  make(map[string]int),
		fileChanges: make(map[string]int),
	}
}

// 📝 Record folds one file outcome into the summary
func (s *Summary) Record(o FileOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scanned++

	if o.Err != nil {
		s.errs = append(s.errs, FileError{Path: o.Path, Job: o.Job, Err: o.Err})
		return
	}

	if o.Changes == 0 {
		return
	}

	s.changedFiles++
	s.totalChanges += o.Changes
	s.fileChanges[o.Path] += o.Changes
	for name, hits := range o.RuleHits {
		s.ruleTotals[name] += hits
	}
}

// FilesScanned returns the number of files processed, failures included
func (s *Summary) FilesScanned() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanned
}

// FilesChanged returns the number of files that had at least one replacement
func (s *Summary) FilesChanged() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changedFiles
}

// TotalChanges returns the replacement count across all files
func (s *Summary) TotalChanges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalChanges
}

// RuleTotals returns a copy of the per-rule replacement counts
func (s *Summary) RuleTotals() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	totals := make(map[string]int, len(s.ruleTotals))
	for name, hits := range s.ruleTotals {
		totals[name] = hits
	}
	return totals
}

// Errors returns the recorded per-file failures in arrival order
func (s *Summary) Errors() []FileError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FileError{}, s.errs...)
}

// 🏆 TopFiles returns the n most-changed files, highest count first.
// Ties break on path so the ranking is stable.
func (s *Summary) TopFiles(n int) []FileCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := make([]FileCount, 0, len(s.fileChanges))
	for path, count := range s.fileChanges {
		ranked = append(ranked, FileCount{Path: path, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Path < ranked[j].Path
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
