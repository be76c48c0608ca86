// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated signals a missing, expired or revoked session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials signals a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists signals an email conflict.
	ErrUserExists = errors.New("user exists")
	// ErrTeamMemberNotFound signals a missing roster entry.
	ErrTeamMemberNotFound = errors.New("team member not found")
	// ErrProjectNotFound signals a missing project.
	ErrProjectNotFound = errors.New("project not found")
	// ErrTaskNotFound signals a missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNoDragInProgress is returned by a drop without a preceding drag start.
	ErrNoDragInProgress = errors.New("no drag in progress")
	// ErrDragExpired is returned by a drop observed after the drag window closed.
	ErrDragExpired = errors.New("drag expired")
	// ErrUnknownColumn signals a column id outside the fixed board columns.
	ErrUnknownColumn = errors.New("unknown column")
)
