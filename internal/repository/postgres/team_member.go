package postgres

import (
	"context"
	"errors"
	"fmt"

	"project-tracker/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	listTeamMembersQuery  = `SELECT id, name, COALESCE(role, '') FROM team_members ORDER BY seq`
	insertTeamMemberQuery = `INSERT INTO team_members(id, name, role) VALUES ($1, $2, NULLIF($3, '')) RETURNING id, name, COALESCE(role, '')`
	updateTeamMemberQuery = `UPDATE team_members SET name = $2, role = NULLIF($3, '') WHERE id = $1 RETURNING id, name, COALESCE(role, '')`
	deleteTeamMemberQuery = `DELETE FROM team_members WHERE id = $1`
)

// ListTeamMembers returns the roster in insertion order.
func (p *Postgres) ListTeamMembers(ctx context.Context) ([]entities.TeamMember, error) {
	rows, err := p.db.Query(ctx, listTeamMembersQuery)
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

// InsertTeamMember stores a member under a generated id and returns the stored row.
func (p *Postgres) InsertTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error) {
	var m entities.TeamMember
	if err := p.db.QueryRow(ctx, insertTeamMemberQuery, uuid.NewString(), member.Name, member.Role).
		Scan(&m.ID, &m.Name, &m.Role); err != nil {
		p.log.Errorw("failed to insert team member", "error", err)
		return nil, fmt.Errorf("insert team member: %w", err)
	}

	p.log.Infow("team member inserted", "member_id", m.ID)
	return &m, nil
}

// UpdateTeamMember overwrites name and role of an existing member.
func (p *Postgres) UpdateTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error) {
	var m entities.TeamMember
	err := p.db.QueryRow(ctx, updateTeamMemberQuery, member.ID, member.Name, member.Role).
		Scan(&m.ID, &m.Name, &m.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamMemberNotFound
		}
		p.log.Errorw("failed to update team member", "error", err, "member_id", member.ID)
		return nil, fmt.Errorf("update team member: %w", err)
	}
	return &m, nil
}

// DeleteTeamMember removes a roster entry. Project and task team snapshots are left untouched.
func (p *Postgres) DeleteTeamMember(ctx context.Context, memberID string) error {
	tag, err := p.db.Exec(ctx, deleteTeamMemberQuery, memberID)
	if err != nil {
		p.log.Errorw("failed to delete team member", "error", err, "member_id", memberID)
		return fmt.Errorf("delete team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTeamMemberNotFound
	}
	return nil
}
