package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pst/internal/domain"
)

// ThreadViewer browses the threads of a stored run in an interactive TUI
type ThreadViewer struct {
	failedOnly bool
}

// NewThreadViewer creates a new ThreadViewer. With failedOnly only threads
// that exited non-zero are listed.
func NewThreadViewer(failedOnly bool) *ThreadViewer {
	return &ThreadViewer{failedOnly: failedOnly}
}

// View displays the threads of summary
func (tv *ThreadViewer) View(summary *domain.RunSummary) error {
	threads := summary.Details
	if tv.failedOnly {
		threads = failedThreads(threads)
	}
	if len(threads) == 0 {
		if tv.failedOnly {
			color.Green("✓ No failed threads in the last run!")
		} else {
			color.Yellow("The last run has no threads")
		}
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for _, t := range threads {
		list.AddItem(threadItemText(t, summary.Meta.Threads), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(runHeaderText(summary.Meta))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(threads) {
			return
		}
		statsView.SetText(formatThreadStats(threads[index], summary.Meta.Threads))
		detailsView.SetText(formatThreadDetails(threads[index]))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func failedThreads(threads []domain.ThreadSummary) []domain.ThreadSummary {
	var failed []domain.ThreadSummary
	for _, t := range threads {
		if t.ExitCode != 0 {
			failed = append(failed, t)
		}
	}
	return failed
}

func runHeaderText(meta domain.RunMeta) string {
	return fmt.Sprintf(" Run %s (%d threads, %d failed, exit code %d) | ↑↓ navigate, → details, ← back, q to exit ",
		shortID(meta.RunID), meta.Threads, meta.FailedThreads, meta.ExitCode)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// threadItemText is the list label, using tview colour tags
func threadItemText(t domain.ThreadSummary, total int) string {
	if t.ExitCode == 0 {
		return fmt.Sprintf("[green]✓[white] thread %d/%d, %d suite(s)", t.Thread, total, len(t.Suites))
	}
	return fmt.Sprintf("[red]✗[white] thread %d/%d, %d suite(s) [red](exit %d)[white]", t.Thread, total, len(t.Suites), t.ExitCode)
}

func formatThreadStats(t domain.ThreadSummary, total int) string {
	return fmt.Sprintf("[cyan]thread:[white] [yellow]%d/%d[white]  [cyan]weight:[white] [yellow]%.2f[white]  [cyan]duration:[white] [yellow]%s[white]\n",
		t.Thread, total, t.Weight, t.Duration)
}

// formatThreadDetails formats a thread for display using tview colour tags
func formatThreadDetails(t domain.ThreadSummary) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	if t.ExitCode == 0 {
		fmt.Fprintf(w, "[green]✓ Thread %d passed[white]\n\n", t.Thread)
	} else {
		fmt.Fprintf(w, "[red]✗ Thread %d exited with code %d[white]\n\n", t.Thread, t.ExitCode)
	}

	fmt.Fprintf(w, "[yellow]Suites:[white]\n")
	for i, suite := range t.Suites {
		fmt.Fprintf(w, "  %d.\t%s\n", i+1, tview.Escape(suite))
	}
	if len(t.Suites) == 0 {
		fmt.Fprintf(w, "  [gray](none)[white]\n")
	}

	w.Flush()
	return builder.String()
}
