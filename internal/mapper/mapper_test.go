package mapper

import (
	"testing"
	"time"

	"project-tracker/internal/entities"
	api "project-tracker/internal/transport/http/api"

	"github.com/stretchr/testify/require"
)

func TestFromAPIProject(t *testing.T) {
	p, err := FromAPIProject("p-1", api.ProjectInput{
		Name:      "Website",
		StartDate: "2024-01-01",
		EndDate:   "2024-03-01",
		TeamIDs:   []string{"a", " ", "b"},
	})
	require.NoError(t, err)
	require.Equal(t, "p-1", p.ID)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
	require.Equal(t, entities.TeamSnapshot{{ID: "a"}, {ID: "b"}}, p.Team)

	_, err = FromAPIProject("", api.ProjectInput{Name: "x", StartDate: "01/01/2024", EndDate: "2024-03-01"})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	require.Contains(t, err.Error(), "start_date")
}

func TestFromAPITaskOptionalDueDate(t *testing.T) {
	task, err := FromAPITask("", api.TaskInput{Title: "Write docs"})
	require.NoError(t, err)
	require.True(t, task.DueDate.IsZero())
	require.Empty(t, task.Team)

	_, err = FromAPITask("", api.TaskInput{Title: "Write docs", DueDate: "tomorrow"})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestToAPIBoard(t *testing.T) {
	columns := entities.BoardLayout()
	columns[1].Tasks = append(columns[1].Tasks, entities.Task{
		ID:       "t-1",
		Title:    "Build",
		Status:   entities.StatusInProgress,
		Priority: entities.PriorityHigh,
		DueDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	b := ToAPIBoard(entities.BoardView{Columns: columns, Drag: &entities.Drag{TaskID: "t-1", From: entities.ColumnInProgress}})
	require.Len(t, b.Columns, 3)
	require.Equal(t, "inProgress", b.Columns[1].ID)
	require.Equal(t, "2024-02-01", b.Columns[1].Tasks[0].DueDate)
	require.NotNil(t, b.Columns[0].Tasks)
	require.Equal(t, "t-1", b.Drag.TaskID)
	require.Nil(t, b.ProjectID)
}
