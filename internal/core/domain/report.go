package domain

import "time"

// UnitResult is the outcome of one source image at one width.
type UnitResult struct {
	Width  int
	Status UnitStatus
	Err    error
}

// Failure describes a unit of work, an image or a root that could not be processed.
type Failure struct {
	Path  string
	Width int
	Err   error
}

// BuildReport summarises one pipeline run.
type BuildReport struct {
	Roots            int
	Images           int
	Encoded          int
	Fresh            int
	Failed           int
	ManifestsWritten int
	Failures         []Failure
	Duration         time.Duration
}

// Add folds the unit outcomes of one image into the report.
func (r *BuildReport) Add(path string, units []UnitResult) {
	for _, u := range units {
		switch u.Status {
		case UnitStatusCompleted:
			r.Encoded++
		case UnitStatusCached:
			r.Fresh++
		case UnitStatusFailed:
			r.Failed++
			r.Failures = append(r.Failures, Failure{Path: path, Width: u.Width, Err: u.Err})
		}
	}
}

// Fail records a failure that is not tied to a single width.
func (r *BuildReport) Fail(path string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, Failure{Path: path, Err: err})
}
