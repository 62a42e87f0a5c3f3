package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Formatter renders file outcomes and the final summary for the user
type Formatter interface {
	// FormatFileOutcome formats a single file result line
	FormatFileOutcome(o FileOutcome) string

	// PrintFileOutcome renders one file result as it happens
	PrintFileOutcome(o FileOutcome)

	// PrintSummary renders the end-of-run summary
	PrintSummary(s *Summary, topN int)
}

// 🖥️ ConsoleFormatter renders outcomes with pterm prefix printers
type ConsoleFormatter struct {
	Verbose bool // also print unchanged files
}

// NewConsoleFormatter creates a console formatter
func NewConsoleFormatter(verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{Verbose: verbose}
}

// FormatFileOutcome formats a file result line with emojis
func (f *ConsoleFormatter) FormatFileOutcome(o FileOutcome) string {
	switch {
	case o.Err != nil:
		return fmt.Sprintf("❌ Failed %s: %v", o.Path, o.Err)
	case o.Changes > 0 && !o.Written:
		return fmt.Sprintf("🔍 Would change %s (%d replacements)", o.Path, o.Changes)
	case o.Changes > 0:
		return fmt.Sprintf("📝 Modified %s (%d replacements)", o.Path, o.Changes)
	default:
		return fmt.Sprintf("👍 Unchanged %s", o.Path)
	}
}

// PrintFileOutcome renders one file result line
func (f *ConsoleFormatter) PrintFileOutcome(o FileOutcome) {
	msg := f.FormatFileOutcome(o)
	switch {
	case o.Err != nil:
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(msg)
	case o.Changes > 0 && !o.Written:
		pterm.Info.WithPrefix(pterm.Prefix{Text: "🔍"}).Println(msg)
	case o.Changes > 0:
		pterm.Success.WithPrefix(pterm.Prefix{Text: "📝"}).Println(msg)
	case f.Verbose:
		pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"}).Println(msg)
	}
}

// PrintSummary renders the end-of-run summary: totals, per-rule counts and
// the most-changed files
func (f *ConsoleFormatter) PrintSummary(s *Summary, topN int) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📊"}).Printf(
		"%d files scanned, %d changed, %d replacements\n",
		s.FilesScanned(), s.FilesChanged(), s.TotalChanges())

	if top := s.TopFiles(topN); len(top) > 0 {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "🏆"}).Println("Most changed files:")
		for _, fc := range top {
			pterm.Printf("   %4d  %s\n", fc.Count, fc.Path)
		}
	}

	for _, fe := range s.Errors() {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Printf(
			"%s (job %s): %v\n", fe.Path, fe.Job, fe.Err)
	}
}
