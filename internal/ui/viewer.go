package ui

import "pst/internal/domain"

// Viewer displays a stored run in an interactive TUI
type Viewer interface {
	View(summary *domain.RunSummary) error
}
