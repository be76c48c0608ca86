package memory

import (
	"context"
	"fmt"

	"project-tracker/internal/entities"
)

type memberRecord struct {
	Seq    int64
	Member entities.TeamMember
}

func (r memberRecord) sequence() int64 { return r.Seq }

// ListTeamMembers returns the roster in insertion order.
func (m *Memory) ListTeamMembers(ctx context.Context) ([]entities.TeamMember, error) {
	records, err := collect(m.members.QueryMany(ctx, everything[memberRecord]))
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	out := make([]entities.TeamMember, 0, len(records))
	for _, r := range records {
		out = append(out, r.Member)
	}
	return out, nil
}

// InsertTeamMember stores a member under a generated id.
func (m *Memory) InsertTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error) {
	member.ID = ""
	rec := memberRecord{Seq: m.nextSeq(), Member: member}
	if err := m.members.Create(ctx, &rec); err != nil {
		m.log.Errorw("failed to insert team member", "error", err)
		return nil, fmt.Errorf("insert team member: %w", err)
	}

	m.log.Infow("team member inserted", "member_id", rec.Member.ID)
	return &rec.Member, nil
}

// UpdateTeamMember overwrites name and role of an existing member.
func (m *Memory) UpdateTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, found, err := m.members.FindByID(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("update team member: %w", err)
	}
	if !found {
		return nil, entities.ErrTeamMemberNotFound
	}
	rec.Member = member
	if err := m.members.Update(ctx, &rec); err != nil {
		return nil, mapNotFound(err, entities.ErrTeamMemberNotFound)
	}
	return &rec.Member, nil
}

// DeleteTeamMember removes a roster entry.
func (m *Memory) DeleteTeamMember(ctx context.Context, memberID string) error {
	if err := m.members.DeleteByID(ctx, memberID); err != nil {
		return mapNotFound(err, entities.ErrTeamMemberNotFound)
	}
	return nil
}
