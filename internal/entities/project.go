// Package entities contains core business entities.
package entities

import "time"

// DateLayout is the calendar date format used for project and task dates.
const DateLayout = "2006-01-02"

// Project is the metadata of a named initiative owning zero or more tasks.
type Project struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Team        TeamSnapshot
}

// Clone returns a copy that shares no slices with p.
func (p Project) Clone() Project {
	p.Team = p.Team.Clone()
	return p
}

// ActiveAt reports whether the project ends after the given moment.
func (p Project) ActiveAt(now time.Time) bool {
	return p.EndDate.After(now)
}

// ProjectList is the projects store's list together with its loading and error state.
type ProjectList struct {
	Projects []Project
	Loading  bool
	// Error is the message of the last failed operation, empty after a success.
	Error string
}
