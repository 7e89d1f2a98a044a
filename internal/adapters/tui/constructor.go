// Package tui provides an interactive terminal view of a running build.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/folio-site/folio/internal/core/domain"
)

// NewModel creates a new TUI model with default settings.
func NewModel() Model {
	return Model{
		Units:      make([]*UnitNode, 0),
		UnitMap:    make(map[string]*UnitNode),
		SpanMap:    make(map[string]*UnitNode),
		Viewport:   viewport.New(0, 0),
		FollowMode: true,
	}
}

// newUnit returns a pending node for an image path.
func newUnit(name string) *UnitNode {
	return &UnitNode{Name: name, Status: domain.UnitStatusPending}
}
