package domain

import (
	"context"
	"math"
	"sort"

	"project-tracker/internal/entities"

	"go.llib.dev/testcase/clock"
)

const recentProjects = 3

// Dashboard summarizes the session's projects and roster.
func (u *Usecase) Dashboard(ctx context.Context, session *entities.Session) (entities.Dashboard, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return entities.Dashboard{}, err
	}
	return dashboard(ws.projects.All(), ws.team.All()), nil
}

func dashboard(projects []entities.Project, members []entities.TeamMember) entities.Dashboard {
	now := clock.Now()
	d := entities.Dashboard{
		TotalProjects:    len(projects),
		TotalTeamMembers: len(members),
	}
	for _, p := range projects {
		if p.ActiveAt(now) {
			d.ActiveProjects++
		} else {
			d.CompletedProjects++
		}
	}
	if d.TotalProjects > 0 {
		d.CompletionPercentage = int(math.Round(float64(d.CompletedProjects) / float64(d.TotalProjects) * 100))
	}

	for _, m := range members {
		for _, p := range projects {
			if p.Team.Contains(m.ID) {
				d.ActiveTeamMembers++
				break
			}
		}
	}

	recent := append([]entities.Project{}, projects...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].StartDate.After(recent[j].StartDate)
	})
	if len(recent) > recentProjects {
		recent = recent[:recentProjects]
	}
	d.RecentProjects = recent
	return d
}
