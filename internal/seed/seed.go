// Package seed loads a YAML fixture of users, team members, projects and tasks into a repository.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"project-tracker/internal/entities"
	"project-tracker/internal/repository"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document accepted by Apply.
type Fixture struct {
	Users       []User                `yaml:"users"`
	TeamMembers []entities.TeamMember `yaml:"team_members"`
	Projects    []Project             `yaml:"projects"`
	// Tasks belong to no project.
	Tasks []Task `yaml:"tasks"`
}

// User is an account with a plain-text password, hashed on insert.
type User struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Project lists its team by member name. Dates use YYYY-MM-DD.
type Project struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	StartDate   string   `yaml:"start_date"`
	EndDate     string   `yaml:"end_date"`
	Team        []string `yaml:"team"`
	Tasks       []Task   `yaml:"tasks"`
}

// Task lists its team by member name.
type Task struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Status      string   `yaml:"status"`
	Priority    string   `yaml:"priority"`
	DueDate     string   `yaml:"due_date"`
	Team        []string `yaml:"team"`
}

// Summary counts what Apply inserted.
type Summary struct {
	Users       int
	TeamMembers int
	Projects    int
	Tasks       int
}

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, email, password string) (*entities.User, error)
}

// Load reads and decodes a fixture file.
func Load(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a fixture document. Unknown fields are rejected.
func Parse(raw []byte) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Apply inserts the fixture. Existing users are skipped; everything else is inserted as new rows.
func Apply(ctx context.Context, log *zap.SugaredLogger, repo repository.Repository, users Registrar, f *Fixture) (Summary, error) {
	var sum Summary

	for _, u := range f.Users {
		if _, err := users.Register(ctx, u.Email, u.Password); err != nil {
			if errors.Is(err, entities.ErrUserExists) {
				log.Infow("seed user exists", "email", u.Email)
				continue
			}
			return sum, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		sum.Users++
	}

	roster := make(map[string]entities.TeamMember, len(f.TeamMembers))
	for _, m := range f.TeamMembers {
		m.ID = ""
		added, err := repo.InsertTeamMember(ctx, m)
		if err != nil {
			return sum, fmt.Errorf("seed team member %s: %w", m.Name, err)
		}
		roster[added.Name] = *added
		sum.TeamMembers++
	}

	for _, t := range f.Tasks {
		if err := insertTask(ctx, repo, roster, "", t); err != nil {
			return sum, err
		}
		sum.Tasks++
	}

	for _, p := range f.Projects {
		project, err := toProject(roster, p)
		if err != nil {
			return sum, err
		}
		created, err := repo.InsertProject(ctx, project)
		if err != nil {
			return sum, fmt.Errorf("seed project %s: %w", p.Name, err)
		}
		sum.Projects++

		for _, t := range p.Tasks {
			if err := insertTask(ctx, repo, roster, created.ID, t); err != nil {
				return sum, err
			}
			sum.Tasks++
		}
	}

	log.Infow("seed applied",
		"users", sum.Users,
		"team_members", sum.TeamMembers,
		"projects", sum.Projects,
		"tasks", sum.Tasks,
	)
	return sum, nil
}

func insertTask(ctx context.Context, repo repository.TaskInterface, roster map[string]entities.TeamMember, projectID string, t Task) error {
	task, err := toTask(roster, t)
	if err != nil {
		return err
	}
	task.ProjectID = projectID
	if _, err := repo.InsertTask(ctx, task); err != nil {
		return fmt.Errorf("seed task %s: %w", t.Title, err)
	}
	return nil
}

func toProject(roster map[string]entities.TeamMember, p Project) (entities.Project, error) {
	start, err := date(p.StartDate)
	if err != nil {
		return entities.Project{}, fmt.Errorf("project %s: %w", p.Name, err)
	}
	end, err := date(p.EndDate)
	if err != nil {
		return entities.Project{}, fmt.Errorf("project %s: %w", p.Name, err)
	}
	team, err := snapshot(roster, p.Team)
	if err != nil {
		return entities.Project{}, fmt.Errorf("project %s: %w", p.Name, err)
	}
	if strings.TrimSpace(p.Name) == "" || end.Before(start) {
		return entities.Project{}, fmt.Errorf("%w: project %q needs a name and ordered dates", entities.ErrInvalidArgument, p.Name)
	}
	return entities.Project{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		StartDate:   start,
		EndDate:     end,
		Team:        team,
	}, nil
}

func toTask(roster map[string]entities.TeamMember, t Task) (entities.Task, error) {
	task := entities.Task{
		Title:       strings.TrimSpace(t.Title),
		Description: t.Description,
		Status:      entities.TaskStatus(t.Status),
		Priority:    entities.Priority(t.Priority),
	}
	if task.Status == "" {
		task.Status = entities.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = entities.PriorityMedium
	}
	if t.DueDate != "" {
		due, err := date(t.DueDate)
		if err != nil {
			return entities.Task{}, fmt.Errorf("task %s: %w", t.Title, err)
		}
		task.DueDate = due
	}
	team, err := snapshot(roster, t.Team)
	if err != nil {
		return entities.Task{}, fmt.Errorf("task %s: %w", t.Title, err)
	}
	task.Team = team
	if err := task.Validate(); err != nil {
		return entities.Task{}, err
	}
	return task, nil
}

func snapshot(roster map[string]entities.TeamMember, names []string) (entities.TeamSnapshot, error) {
	team := entities.TeamSnapshot{}
	for _, name := range names {
		m, ok := roster[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown team member %q", entities.ErrInvalidArgument, name)
		}
		team = append(team, m)
	}
	return team, nil
}

func date(s string) (time.Time, error) {
	t, err := time.Parse(entities.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", entities.ErrInvalidArgument, s)
	}
	return t, nil
}
