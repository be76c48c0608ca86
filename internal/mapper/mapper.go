// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"fmt"
	"strings"
	"time"

	"project-tracker/internal/entities"
	api "project-tracker/internal/transport/http/api"
)

// ToAPISession maps entities.Session to transport model.
func ToAPISession(s entities.Session, withToken bool) api.Session {
	out := api.Session{UserID: s.UserID, Email: s.Email, ExpiresAt: s.ExpiresAt}
	if withToken {
		out.Token = s.Token
	}
	return out
}

// ToAPITeamMember maps entities.TeamMember to transport model.
func ToAPITeamMember(m entities.TeamMember) api.TeamMember {
	return api.TeamMember{ID: m.ID, Name: m.Name, Role: m.Role}
}

// ToAPITeamMembers maps a roster or snapshot to transport models.
func ToAPITeamMembers(members []entities.TeamMember) []api.TeamMember {
	out := make([]api.TeamMember, 0, len(members))
	for _, m := range members {
		out = append(out, ToAPITeamMember(m))
	}
	return out
}

// FromAPITeamMember builds an entities.TeamMember from transport DTO.
func FromAPITeamMember(id string, src api.TeamMemberInput) entities.TeamMember {
	return entities.TeamMember{ID: id, Name: src.Name, Role: src.Role}
}

// teamRefs builds a snapshot carrying only member ids; the usecase resolves the records.
func teamRefs(ids []string) entities.TeamSnapshot {
	team := make(entities.TeamSnapshot, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			team = append(team, entities.TeamMember{ID: id})
		}
	}
	return team
}

// ToAPIProject maps entities.Project to transport model.
func ToAPIProject(p entities.Project) api.Project {
	return api.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDate(p.EndDate),
		Team:        ToAPITeamMembers(p.Team),
	}
}

// ToAPIProjects maps a project list to transport models.
func ToAPIProjects(projects []entities.Project) []api.Project {
	out := make([]api.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToAPIProject(p))
	}
	return out
}

// ToAPIProjectList maps entities.ProjectList to transport model.
func ToAPIProjectList(l entities.ProjectList) api.ProjectList {
	return api.ProjectList{Projects: ToAPIProjects(l.Projects), Loading: l.Loading, Error: l.Error}
}

// FromAPIProject builds an entities.Project from transport DTO.
func FromAPIProject(id string, src api.ProjectInput) (entities.Project, error) {
	start, err := parseDate("start_date", src.StartDate)
	if err != nil {
		return entities.Project{}, err
	}
	end, err := parseDate("end_date", src.EndDate)
	if err != nil {
		return entities.Project{}, err
	}
	return entities.Project{
		ID:          id,
		Name:        src.Name,
		Description: src.Description,
		StartDate:   start,
		EndDate:     end,
		Team:        teamRefs(src.TeamIDs),
	}, nil
}

// ToAPITask maps entities.Task to transport model.
func ToAPITask(t entities.Task) api.Task {
	return api.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueDate:     formatDate(t.DueDate),
		Priority:    string(t.Priority),
		Team:        ToAPITeamMembers(t.Team),
		ProjectID:   t.ProjectID,
	}
}

// FromAPITask builds an entities.Task from transport DTO.
func FromAPITask(id string, src api.TaskInput) (entities.Task, error) {
	var due time.Time
	if strings.TrimSpace(src.DueDate) != "" {
		d, err := parseDate("due_date", src.DueDate)
		if err != nil {
			return entities.Task{}, err
		}
		due = d
	}
	return entities.Task{
		ID:          id,
		Title:       src.Title,
		Description: src.Description,
		Status:      entities.TaskStatus(strings.TrimSpace(src.Status)),
		DueDate:     due,
		Priority:    entities.Priority(strings.TrimSpace(src.Priority)),
		Team:        teamRefs(src.TeamIDs),
	}, nil
}

// ToAPIBoard maps entities.BoardView to transport model.
func ToAPIBoard(b entities.BoardView) api.Board {
	columns := make([]api.Column, 0, len(b.Columns))
	for _, c := range b.Columns {
		tasks := make([]api.Task, 0, len(c.Tasks))
		for _, t := range c.Tasks {
			tasks = append(tasks, ToAPITask(t))
		}
		columns = append(columns, api.Column{ID: string(c.ID), Title: c.Title, Tasks: tasks})
	}
	out := api.Board{ProjectID: b.ProjectID, Columns: columns, Dropped: b.Dropped}
	if b.Drag != nil {
		out.Drag = &api.Drag{TaskID: b.Drag.TaskID, From: string(b.Drag.From), StartedAt: b.Drag.StartedAt}
	}
	return out
}

// ToAPIDashboard maps entities.Dashboard to transport model.
func ToAPIDashboard(d entities.Dashboard) api.Dashboard {
	return api.Dashboard{
		TotalProjects:        d.TotalProjects,
		ActiveProjects:       d.ActiveProjects,
		CompletedProjects:    d.CompletedProjects,
		CompletionPercentage: d.CompletionPercentage,
		TotalTeamMembers:     d.TotalTeamMembers,
		ActiveTeamMembers:    d.ActiveTeamMembers,
		RecentProjects:       ToAPIProjects(d.RecentProjects),
	}
}

// ToAPIWorkload maps member workloads to transport models.
func ToAPIWorkload(ws []entities.MemberWorkload) []api.MemberWorkload {
	out := make([]api.MemberWorkload, 0, len(ws))
	for _, w := range ws {
		out = append(out, api.MemberWorkload{
			TeamMember:      ToAPITeamMember(w.Member),
			TasksCount:      w.TasksCount,
			TodoTasks:       w.TodoTasks,
			InProgressTasks: w.InProgressTasks,
			DoneTasks:       w.DoneTasks,
			PrimaryTask:     w.PrimaryTask,
		})
	}
	return out
}

// ToAPINotifications maps notifications to transport models.
func ToAPINotifications(ns []entities.Notification) []api.Notification {
	out := make([]api.Notification, 0, len(ns))
	for _, n := range ns {
		out = append(out, api.Notification{
			Title:       n.Title,
			Description: n.Description,
			Variant:     string(n.Variant),
			CreatedAt:   n.CreatedAt,
		})
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entities.DateLayout)
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(entities.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", entities.ErrInvalidArgument, field)
	}
	return t, nil
}
