package tui

import "time"

// PlanMsg lists the images of a build in processing order.
type PlanMsg struct {
	Images []string
}

// UnitStartMsg reports that an image started processing.
type UnitStartMsg struct {
	SpanID    string
	ParentID  string
	Name      string
	StartTime time.Time
}

// UnitLogMsg carries output written while an image was processed.
type UnitLogMsg struct {
	SpanID string
	Data   []byte
}

// UnitCompleteMsg reports that an image finished processing.
type UnitCompleteMsg struct {
	SpanID  string
	EndTime time.Time
	Err     error
}
