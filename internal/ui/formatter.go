package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"pst/internal/distribution"
	"pst/internal/domain"
)

// Formatter formats and displays plans, suite lists and run summaries
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

const (
	threadWidth = 8
	weightWidth = 10
)

// PrintPlan prints one table row per assigned suite, grouped by thread,
// heaviest thread first.
func (f *Formatter) PrintPlan(plan distribution.Plan) {
	var paths []string
	for _, b := range plan.Buckets {
		paths = append(paths, b.Suites...)
	}
	suiteWidth := distribution.MaxPathLength(paths)

	rule := func(left, mid, right string) {
		fmt.Fprintln(f.out, left+
			strings.Repeat("─", threadWidth+2)+mid+
			strings.Repeat("─", weightWidth+2)+mid+
			strings.Repeat("─", suiteWidth+2)+right)
	}
	row := func(thread, weight, suite string) {
		fmt.Fprintf(f.out, "│ %-*s │ %*s │ %-*s │\n", threadWidth, thread, weightWidth, weight, suiteWidth, suite)
	}

	rule("┌", "┬", "┐")
	row("Thread", "Weight", "Suite")
	for i, b := range plan.Buckets {
		rule("├", "┼", "┤")
		label := fmt.Sprintf("[%d/%d]", i+1, plan.Threads())
		weight := fmt.Sprintf("%.2f", b.Weight)
		if len(b.Suites) == 0 {
			row(label, weight, "(empty)")
			continue
		}
		for j, suite := range b.Suites {
			if j == 0 {
				row(label, weight, suite)
			} else {
				row("", "", suite)
			}
		}
	}
	rule("└", "┴", "┘")

	cyan.Fprintf(f.out, "%d suite(s) across %d thread(s), heaviest thread %.2f of %.2f total weight\n",
		plan.Suites(), plan.Threads(), plan.Makespan(), plan.TotalWeight())
}

// PrintSuiteList prints discovered suites with their resolved weights
func (f *Formatter) PrintSuiteList(suites []domain.WeightedSuite) {
	green.Fprintf(f.out, "Found %d test suite(s):\n", len(suites))

	paths := make([]string, len(suites))
	for i, s := range suites {
		paths[i] = s.Path
	}
	width := distribution.MaxPathLength(paths)

	for i, s := range suites {
		connector := "├──"
		if i == len(suites)-1 {
			connector = "└──"
		}
		cyan.Fprintf(f.out, "%s %-*s", connector, width, s.Path)
		white.Fprintf(f.out, "%8.2f\n", s.Weight)
	}
}

// PrintSummary prints the statistics of a finished run
func (f *Formatter) PrintSummary(summary *domain.RunSummary) {
	meta := summary.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Thread Execution Summary                   ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	const sep = "├─────────────────────────────────┼─────────────────────────────┤"
	stat := func(label string, c *color.Color, value any) {
		fmt.Fprintf(f.out, "│ %-31s │ ", label)
		c.Fprintf(f.out, "%-27v", value)
		fmt.Fprintln(f.out, " │")
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	stat("Test Suites", white, meta.TotalSuites)
	fmt.Fprintln(f.out, sep)
	stat("Threads", white, meta.Threads)
	fmt.Fprintln(f.out, sep)
	stat("Passed Threads", green, meta.PassedThreads)
	fmt.Fprintln(f.out, sep)
	stat("Failed Threads", red, meta.FailedThreads)
	fmt.Fprintln(f.out, sep)
	stat("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Fprintln(f.out, sep)
	stat("Exit Code", white, meta.ExitCode)
	fmt.Fprintln(f.out, sep)
	stat("Run ID", white, meta.RunID)
	fmt.Fprintln(f.out, sep)
	stat("Timestamp", white, meta.Timestamp)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedThreads == 0 && meta.ExitCode == 0 {
		green.Fprintln(f.out, "✓ All threads passed!")
		return
	}
	if meta.Bail {
		red.Fprintf(f.out, "✗ Run aborted (bail) with exit code %d\n", meta.ExitCode)
	} else {
		red.Fprintf(f.out, "✗ %d thread(s) failed\n", meta.FailedThreads)
	}
	f.printFailedThreads(summary.Details)
}

// printFailedThreads prints each failed thread with the suites it ran
func (f *Formatter) printFailedThreads(details []domain.ThreadSummary) {
	var failed []domain.ThreadSummary
	for _, d := range details {
		if d.ExitCode != 0 {
			failed = append(failed, d)
		}
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i].Thread < failed[j].Thread })

	for i, d := range failed {
		lastThread := i == len(failed)-1
		connector, indent := "├──", "│   "
		if lastThread {
			connector, indent = "└──", "    "
		}
		yellow.Fprintf(f.out, "%s thread %d (exit code %d, %s)\n", connector, d.Thread, d.ExitCode, d.Duration)
		for j, suite := range d.Suites {
			branch := "├── "
			if j == len(d.Suites)-1 {
				branch = "└── "
			}
			red.Fprintf(f.out, "%s%s%s\n", indent, branch, suite)
		}
	}
}
