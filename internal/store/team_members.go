// Package store holds the per-session Team Members and Projects stores.
// Each store owns its in-memory copy and changes it only after the backend accepted the write.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"project-tracker/internal/entities"
	"project-tracker/internal/notify"
	"project-tracker/internal/reconcile"
	"project-tracker/internal/repository"

	"go.uber.org/zap"
)

// TeamMembers is the roster store. Fetch, update and delete failures are logged and swallowed;
// add failures are returned to the caller. None of its calls are retried.
type TeamMembers struct {
	log  *zap.SugaredLogger
	repo repository.TeamMemberInterface
	rc   *reconcile.Reconciler

	mu      sync.RWMutex
	members []entities.TeamMember
	loaded  bool
}

// NewTeamMembers creates an empty roster store.
func NewTeamMembers(log *zap.SugaredLogger, repo repository.TeamMemberInterface, rc *reconcile.Reconciler) *TeamMembers {
	return &TeamMembers{
		log:     log.Named("store.team"),
		repo:    repo,
		rc:      rc,
		members: []entities.TeamMember{},
	}
}

// FetchAll replaces the roster with the backend's.
func (s *TeamMembers) FetchAll(ctx context.Context) error {
	_, err := reconcile.Run(ctx, s.rc, reconcile.Policy{
		Operation:  "fetch team members",
		Visibility: reconcile.Silent,
	}, s.repo.ListTeamMembers, func(members []entities.TeamMember) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.members = members
		s.loaded = true
	})
	return err
}

// Loaded reports whether a fetch has ever replaced the roster with the backend's.
func (s *TeamMembers) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Add inserts a member and appends the stored record, with its generated id, to the roster.
func (s *TeamMembers) Add(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error) {
	member, err := normalizeMember(member)
	if err != nil {
		return nil, err
	}

	success := notify.Success("Team member added", fmt.Sprintf("%s has been added to the team.", member.Name))
	return reconcile.Run(ctx, s.rc, reconcile.Policy{
		Operation:  "add team member",
		Visibility: reconcile.Raise,
		Success:    &success,
	}, func(ctx context.Context) (*entities.TeamMember, error) {
		return s.repo.InsertTeamMember(ctx, member)
	}, func(added *entities.TeamMember) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.members = append(s.members, *added)
	})
}

// Update writes the member by id and replaces the local entry on success.
// A backend failure leaves the roster unchanged and is not reported.
func (s *TeamMembers) Update(ctx context.Context, member entities.TeamMember) error {
	member, err := normalizeMember(member)
	if err != nil {
		return err
	}
	if member.ID == "" {
		return fmt.Errorf("%w: id is required", entities.ErrInvalidArgument)
	}

	success := notify.Success("Team member updated", fmt.Sprintf("%s's information has been updated.", member.Name))
	_, err = reconcile.Run(ctx, s.rc, reconcile.Policy{
		Operation:  "update team member",
		Visibility: reconcile.Silent,
		Success:    &success,
	}, func(ctx context.Context) (*entities.TeamMember, error) {
		return s.repo.UpdateTeamMember(ctx, member)
	}, func(updated *entities.TeamMember) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.members {
			if s.members[i].ID == updated.ID {
				s.members[i] = *updated
			}
		}
	})
	return err
}

// Delete removes the member by id. A backend failure leaves the roster unchanged and is not reported.
// Project and task team snapshots keep the member.
func (s *TeamMembers) Delete(ctx context.Context, memberID string) error {
	success := notify.Success("Team member removed", "The team member has been removed.")
	_, err := reconcile.Run(ctx, s.rc, reconcile.Policy{
		Operation:  "delete team member",
		Visibility: reconcile.Silent,
		Success:    &success,
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.DeleteTeamMember(ctx, memberID)
	}, func(struct{}) {
		s.mu.Lock()
		defer s.mu.Unlock()
		kept := s.members[:0:0]
		for _, m := range s.members {
			if m.ID != memberID {
				kept = append(kept, m)
			}
		}
		s.members = kept
	})
	return err
}

// GetByID looks the member up in the local roster.
func (s *TeamMembers) GetByID(memberID string) (entities.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == memberID {
			return m, true
		}
	}
	return entities.TeamMember{}, false
}

// All returns a copy of the roster in backend order.
func (s *TeamMembers) All() []entities.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.TeamMember{}, s.members...)
}

// Search returns members whose name contains query, ignoring case. An empty query matches everyone.
func (s *TeamMembers) Search(query string) []entities.TeamMember {
	query = strings.ToLower(strings.TrimSpace(query))
	all := s.All()
	if query == "" {
		return all
	}
	out := make([]entities.TeamMember, 0, len(all))
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Name), query) {
			out = append(out, m)
		}
	}
	return out
}

// Snapshot resolves member ids against the roster, skipping unknown ids.
func (s *TeamMembers) Snapshot(memberIDs []string) entities.TeamSnapshot {
	snapshot := entities.TeamSnapshot{}
	for _, id := range memberIDs {
		if m, ok := s.GetByID(id); ok && !snapshot.Contains(id) {
			snapshot = append(snapshot, m)
		}
	}
	return snapshot
}

func normalizeMember(m entities.TeamMember) (entities.TeamMember, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Role = strings.TrimSpace(m.Role)
	if m.Name == "" {
		return m, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}
	return m, nil
}
