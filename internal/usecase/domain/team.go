package domain

import (
	"context"
	"fmt"
	"strings"

	"project-tracker/internal/entities"
)

// TeamMembers returns the roster, filtered by name when query is not empty.
func (u *Usecase) TeamMembers(ctx context.Context, session *entities.Session, query string) ([]entities.TeamMember, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	return ws.team.Search(query), nil
}

// TeamMember returns one roster entry.
func (u *Usecase) TeamMember(ctx context.Context, session *entities.Session, memberID string) (*entities.TeamMember, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	if memberID == "" {
		u.log.Errorw("failed to get team member: missing id")
		return nil, fmt.Errorf("%w: id is required", entities.ErrInvalidArgument)
	}
	m, ok := ws.team.GetByID(memberID)
	if !ok {
		return nil, entities.ErrTeamMemberNotFound
	}
	return &m, nil
}

// AddTeamMember adds a member to the roster.
func (u *Usecase) AddTeamMember(ctx context.Context, session *entities.Session, member entities.TeamMember) (*entities.TeamMember, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(member.Name) == "" {
		u.log.Errorw("failed to add team member: missing name")
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}
	member.ID = ""
	return ws.team.Add(ctx, member)
}

// UpdateTeamMember writes a member and returns the roster entry afterwards. A rejected write is not
// reported; the returned entry is then the unchanged one.
func (u *Usecase) UpdateTeamMember(ctx context.Context, session *entities.Session, member entities.TeamMember) (*entities.TeamMember, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	if member.ID == "" {
		u.log.Errorw("failed to update team member: missing id")
		return nil, fmt.Errorf("%w: id is required", entities.ErrInvalidArgument)
	}
	if _, ok := ws.team.GetByID(member.ID); !ok {
		return nil, entities.ErrTeamMemberNotFound
	}
	if err := ws.team.Update(ctx, member); err != nil {
		return nil, err
	}
	current, _ := ws.team.GetByID(member.ID)
	return &current, nil
}

// DeleteTeamMember removes a member from the roster. Existing team snapshots keep the member.
func (u *Usecase) DeleteTeamMember(ctx context.Context, session *entities.Session, memberID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return err
	}
	if memberID == "" {
		u.log.Errorw("failed to delete team member: missing id")
		return fmt.Errorf("%w: id is required", entities.ErrInvalidArgument)
	}
	if _, ok := ws.team.GetByID(memberID); !ok {
		return entities.ErrTeamMemberNotFound
	}
	return ws.team.Delete(ctx, memberID)
}

// Workload counts, per roster member, the tasks whose team snapshot includes them. A non-nil
// projectID limits the count to that project's tasks.
func (u *Usecase) Workload(ctx context.Context, session *entities.Session, projectID *string, query string) ([]entities.MemberWorkload, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	tasks, err := u.repo.ListTasks(ctx, entities.TaskFilter{ProjectID: projectID})
	if err != nil {
		u.log.Errorw("failed to list tasks for workload", "error", err)
		return nil, err
	}
	return workload(ws.team.Search(query), tasks), nil
}

func workload(members []entities.TeamMember, tasks []entities.Task) []entities.MemberWorkload {
	out := make([]entities.MemberWorkload, 0, len(members))
	for _, m := range members {
		w := entities.MemberWorkload{Member: m, PrimaryTask: "None"}
		for _, t := range tasks {
			if !t.Team.Contains(m.ID) {
				continue
			}
			if w.TasksCount == 0 {
				w.PrimaryTask = t.Title
			}
			w.TasksCount++
			switch t.Status {
			case entities.StatusTodo:
				w.TodoTasks++
			case entities.StatusInProgress:
				w.InProgressTasks++
			case entities.StatusDone:
				w.DoneTasks++
			}
		}
		out = append(out, w)
	}
	return out
}
