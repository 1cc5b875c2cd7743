package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"pst/internal/distribution"
	"pst/internal/domain"
)

func init() {
	color.NoColor = true
}

func TestFormatter_PrintPlan(t *testing.T) {
	var out bytes.Buffer
	plan := distribution.NewPlan([]domain.Bucket{
		{Weight: 10, Suites: []string{"cypress/e2e/checkout.cy.js"}},
		{Weight: 3, Suites: []string{"a.cy.js", "b.cy.js", "c.cy.js"}},
		{Weight: 0},
	})
	NewFormatter(&out).PrintPlan(plan)
	text := out.String()

	width := distribution.MaxPathLength([]string{"cypress/e2e/checkout.cy.js", "a.cy.js", "b.cy.js", "c.cy.js"})
	for _, want := range []string{
		"│ [1/3]    │      10.00 │ cypress/e2e/checkout.cy.js" + strings.Repeat(" ", width-len("cypress/e2e/checkout.cy.js")) + " │",
		"│ [2/3]    │       3.00 │ a.cy.js",
		"│          │            │ b.cy.js",
		"│ [3/3]    │       0.00 │ (empty)",
		"4 suite(s) across 3 thread(s), heaviest thread 10.00 of 13.00 total weight",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("plan output missing %q\n%s", want, text)
		}
	}
	if strings.Index(text, "a.cy.js") > strings.Index(text, "c.cy.js") {
		t.Error("suites printed out of assignment order")
	}
}

func TestFormatter_PrintSuiteList(t *testing.T) {
	var out bytes.Buffer
	NewFormatter(&out).PrintSuiteList([]domain.WeightedSuite{
		{Path: "a.cy.js", Weight: 1},
		{Path: "b.cy.js", Weight: 5.5},
	})
	text := out.String()

	if !strings.Contains(text, "Found 2 test suite(s):") {
		t.Errorf("missing header:\n%s", text)
	}
	if !strings.Contains(text, "├── a.cy.js") || !strings.Contains(text, "└── b.cy.js") {
		t.Errorf("missing tree lines:\n%s", text)
	}
	if !strings.Contains(text, "5.50\n") {
		t.Errorf("missing weight:\n%s", text)
	}
}

func TestFormatter_PrintSummary(t *testing.T) {
	summary := &domain.RunSummary{
		Meta: domain.RunMeta{RunID: "abc", TotalSuites: 3, Threads: 2, PassedThreads: 1, FailedThreads: 1, ExitCode: 2},
		Details: []domain.ThreadSummary{
			{Thread: 2, ExitCode: 2, Duration: "4s", Suites: []string{"x.cy.js", "y.cy.js"}},
			{Thread: 1, ExitCode: 0, Duration: "3s", Suites: []string{"z.cy.js"}},
		},
	}

	t.Run("failures", func(t *testing.T) {
		var out bytes.Buffer
		NewFormatter(&out).PrintSummary(summary)
		text := out.String()
		for _, want := range []string{
			"│ Failed Threads                  │ 1",
			"✗ 1 thread(s) failed",
			"└── thread 2 (exit code 2, 4s)",
			"    ├── x.cy.js",
			"    └── y.cy.js",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("summary missing %q\n%s", want, text)
			}
		}
		if strings.Contains(text, "z.cy.js") {
			t.Error("passing thread listed among failures")
		}
	})

	t.Run("bail", func(t *testing.T) {
		bailed := *summary
		bailed.Meta.Bail = true
		var out bytes.Buffer
		NewFormatter(&out).PrintSummary(&bailed)
		if !strings.Contains(out.String(), "✗ Run aborted (bail) with exit code 2") {
			t.Errorf("expected bail line:\n%s", out.String())
		}
	})

	t.Run("all passed", func(t *testing.T) {
		var out bytes.Buffer
		NewFormatter(&out).PrintSummary(&domain.RunSummary{Meta: domain.RunMeta{Threads: 2, PassedThreads: 2}})
		if !strings.Contains(out.String(), "✓ All threads passed!") {
			t.Errorf("expected success line:\n%s", out.String())
		}
	})
}
