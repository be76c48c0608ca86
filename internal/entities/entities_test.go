package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskValidate(t *testing.T) {
	valid := Task{Title: "Write docs", Status: StatusTodo, Priority: PriorityLow}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(t *Task)
	}{
		{name: "blank title", mutate: func(t *Task) { t.Title = "  " }},
		{name: "unknown status", mutate: func(t *Task) { t.Status = "blocked" }},
		{name: "unknown priority", mutate: func(t *Task) { t.Priority = "urgent" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			task := valid
			tt.mutate(&task)
			require.ErrorIs(t, task.Validate(), ErrInvalidArgument)
		})
	}
}

func TestTeamSnapshotClone(t *testing.T) {
	s := TeamSnapshot{{ID: "a", Name: "Alice"}}
	c := s.Clone()
	c[0].Name = "Changed"
	require.Equal(t, "Alice", s[0].Name)
	require.True(t, s.Contains("a"))
	require.False(t, s.Contains("b"))

	var empty TeamSnapshot
	require.NotNil(t, empty.Clone())
}

func TestTaskCloneSharesNoTeam(t *testing.T) {
	task := Task{ID: "1", Team: TeamSnapshot{{ID: "a"}}}
	c := task.Clone()
	c.Team[0].ID = "b"
	require.Equal(t, "a", task.Team[0].ID)
}

func TestBoardLayout(t *testing.T) {
	cols := BoardLayout()
	require.Len(t, cols, 3)
	require.Equal(t, []ColumnID{ColumnTodo, ColumnInProgress, ColumnDone}, []ColumnID{cols[0].ID, cols[1].ID, cols[2].ID})
	for _, c := range cols {
		require.True(t, c.Status.Valid())
		require.NotNil(t, c.Tasks)
		require.Empty(t, c.Tasks)
	}

	cols[0].Tasks = append(cols[0].Tasks, Task{ID: "x"})
	require.Empty(t, BoardLayout()[0].Tasks)
}

func TestProjectActiveAt(t *testing.T) {
	p := Project{EndDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.True(t, p.ActiveAt(time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC)))
	require.False(t, p.ActiveAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}
