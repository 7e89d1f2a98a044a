package domain

// UnitStatus represents the lifecycle state of a unit of work (one source image at one width).
type UnitStatus string

const (
	// UnitStatusPending indicates the unit is waiting to be scheduled.
	UnitStatusPending UnitStatus = "pending"
	// UnitStatusRunning indicates the unit is currently encoding.
	UnitStatusRunning UnitStatus = "running"
	// UnitStatusCompleted indicates both derivatives were encoded successfully.
	UnitStatusCompleted UnitStatus = "completed"
	// UnitStatusFailed indicates encoding or writing failed.
	UnitStatusFailed UnitStatus = "failed"
	// UnitStatusCached indicates the derivatives were already up to date.
	UnitStatusCached UnitStatus = "cached"
	// UnitStatusSkipped indicates the unit was not attempted (e.g. the source could not be decoded).
	UnitStatusSkipped UnitStatus = "skipped"
)

// IsTerminal checks if a status is a terminal state (Completed, Failed, Cached, Skipped).
func (s UnitStatus) IsTerminal() bool {
	switch s {
	case UnitStatusCompleted, UnitStatusFailed, UnitStatusCached, UnitStatusSkipped:
		return true
	default:
		return false
	}
}
