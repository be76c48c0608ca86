package notify

import (
	"testing"
	"time"

	"project-tracker/internal/entities"

	"github.com/stretchr/testify/require"
	"go.llib.dev/testcase/clock/timecop"
)

func TestQueueDrainReturnsArrivalOrder(t *testing.T) {
	q := NewQueue(0)
	q.Notify(Success("Task added", "Design"))
	q.Notify(Failure("Error", "Failed to update task."))

	require.Equal(t, 2, q.Len())
	got := q.Drain()
	require.Len(t, got, 2)
	require.Equal(t, "Task added", got[0].Title)
	require.Equal(t, entities.VariantDefault, got[0].Variant)
	require.Equal(t, entities.VariantDestructive, got[1].Variant)

	require.Equal(t, 0, q.Len())
	require.Empty(t, q.Drain())
}

func TestQueueDropsOldestWhenFull(t *testing.T) {
	q := NewQueue(2)
	q.Notify(Success("one", ""))
	q.Notify(Success("two", ""))
	q.Notify(Success("three", ""))

	got := q.Drain()
	require.Equal(t, []string{"two", "three"}, []string{got[0].Title, got[1].Title})
}

func TestQueueStampsCreatedAt(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	timecop.Travel(t, at, timecop.Freeze)

	q := NewQueue(1)
	q.Notify(entities.Notification{Title: "Project created successfully"})

	got := q.Drain()
	require.True(t, got[0].CreatedAt.Equal(at))
	require.Equal(t, entities.VariantDefault, got[0].Variant)
}
