package domain_test

import (
	"testing"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestUnitStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.UnitStatus
		isTerminal bool
	}{
		{"Pending", domain.UnitStatusPending, false},
		{"Running", domain.UnitStatusRunning, false},
		{"Completed", domain.UnitStatusCompleted, true},
		{"Failed", domain.UnitStatusFailed, true},
		{"Cached", domain.UnitStatusCached, true},
		{"Skipped", domain.UnitStatusSkipped, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}
