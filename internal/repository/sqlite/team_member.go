package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"project-tracker/internal/entities"

	"github.com/google/uuid"
)

const (
	listTeamMembersQuery  = `SELECT id, name, COALESCE(role, '') FROM team_members ORDER BY seq`
	insertTeamMemberQuery = `INSERT INTO team_members(id, name, role) VALUES (?, ?, ?) RETURNING id, name, COALESCE(role, '')`
	updateTeamMemberQuery = `UPDATE team_members SET name = ?, role = ? WHERE id = ? RETURNING id, name, COALESCE(role, '')`
	deleteTeamMemberQuery = `DELETE FROM team_members WHERE id = ?`
)

// ListTeamMembers returns the roster in insertion order.
func (s *SQLite) ListTeamMembers(ctx context.Context) ([]entities.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx, listTeamMembersQuery)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	members := make([]entities.TeamMember, 0)
	for rows.Next() {
		var m entities.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team members: %w", err)
	}
	return members, nil
}

// InsertTeamMember stores a member under a generated id.
func (s *SQLite) InsertTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error) {
	var m entities.TeamMember
	if err := s.db.QueryRowContext(ctx, insertTeamMemberQuery, uuid.NewString(), member.Name, nullableText(member.Role)).
		Scan(&m.ID, &m.Name, &m.Role); err != nil {
		s.log.Errorw("failed to insert team member", "error", err)
		return nil, fmt.Errorf("insert team member: %w", err)
	}

	s.log.Infow("team member inserted", "member_id", m.ID)
	return &m, nil
}

// UpdateTeamMember overwrites name and role of an existing member.
func (s *SQLite) UpdateTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error) {
	var m entities.TeamMember
	err := s.db.QueryRowContext(ctx, updateTeamMemberQuery, member.Name, nullableText(member.Role), member.ID).
		Scan(&m.ID, &m.Name, &m.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTeamMemberNotFound
		}
		s.log.Errorw("failed to update team member", "error", err, "member_id", member.ID)
		return nil, fmt.Errorf("update team member: %w", err)
	}
	return &m, nil
}

// DeleteTeamMember removes a roster entry.
func (s *SQLite) DeleteTeamMember(ctx context.Context, memberID string) error {
	res, err := s.db.ExecContext(ctx, deleteTeamMemberQuery, memberID)
	if err != nil {
		s.log.Errorw("failed to delete team member", "error", err, "member_id", memberID)
		return fmt.Errorf("delete team member: %w", err)
	}
	return requireAffected(res, entities.ErrTeamMemberNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
