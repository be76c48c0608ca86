// Package entities contains core business entities.
package entities

// TeamMember is a person on the roster who can be assigned to projects and tasks.
// An empty Role means the member has no role.
type TeamMember struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}

// TeamSnapshot is a copy of team member records taken when they were assigned.
// It is not updated when the roster changes.
type TeamSnapshot []TeamMember

// Contains reports whether the snapshot holds a member with the given id.
func (s TeamSnapshot) Contains(memberID string) bool {
	for _, m := range s {
		if m.ID == memberID {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the snapshot.
func (s TeamSnapshot) Clone() TeamSnapshot {
	out := make(TeamSnapshot, len(s))
	copy(out, s)
	return out
}
