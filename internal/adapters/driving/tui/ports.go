// Package tui provides an interactive terminal user interface for wordbook.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/wordbook/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Words is the observable word store.
	Words driving.WordService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Words == nil {
		return ErrMissingWordService
	}
	return nil
}
