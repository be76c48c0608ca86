// Package memory implements the repository in process memory on top of frameless' memory adapter.
package memory

import (
	"cmp"
	"context"
	"errors"
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	fmemory "go.llib.dev/frameless/adapter/memory"
	"go.llib.dev/frameless/port/crud"
	"go.uber.org/zap"
)

// Memory keeps every table in a shared frameless memory store.
// Records carry a sequence number so listings keep insertion order.
type Memory struct {
	log *zap.SugaredLogger
	seq atomic.Int64

	// mu serialises read-modify-write sequences and the email uniqueness check.
	mu sync.Mutex

	members  *fmemory.Repository[memberRecord, string]
	projects *fmemory.Repository[projectRecord, string]
	tasks    *fmemory.Repository[taskRecord, string]
	users    *fmemory.Repository[userRecord, string]
}

// New creates an empty in-memory repository.
func New(log *zap.SugaredLogger) *Memory {
	store := fmemory.NewMemory()
	makeID := func(context.Context) (string, error) { return uuid.NewString(), nil }

	return &Memory{
		log: log.Named("repo.memory"),
		members: &fmemory.Repository[memberRecord, string]{
			Memory: store,
			IDA:    func(r *memberRecord) *string { return &r.Member.ID },
			MakeID: makeID,
		},
		projects: &fmemory.Repository[projectRecord, string]{
			Memory: store,
			IDA:    func(r *projectRecord) *string { return &r.Project.ID },
			MakeID: makeID,
		},
		tasks: &fmemory.Repository[taskRecord, string]{
			Memory: store,
			IDA:    func(r *taskRecord) *string { return &r.Task.ID },
			MakeID: makeID,
		},
		users: &fmemory.Repository[userRecord, string]{
			Memory: store,
			IDA:    func(r *userRecord) *string { return &r.User.ID },
			MakeID: makeID,
		},
	}
}

// OnStart is a no-op.
func (m *Memory) OnStart(_ context.Context) error {
	m.log.Infow("memory repository ready")
	return nil
}

// OnStop is a no-op.
func (m *Memory) OnStop(_ context.Context) error { return nil }

func (m *Memory) nextSeq() int64 { return m.seq.Add(1) }

type sequenced interface {
	sequence() int64
}

// collect drains a frameless iterator and orders the records by insertion.
func collect[R sequenced](records iter.Seq2[R, error], err error) ([]R, error) {
	if err != nil {
		return nil, err
	}
	out := make([]R, 0)
	for r, err := range records {
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b R) int { return cmp.Compare(a.sequence(), b.sequence()) })
	return out, nil
}

// everything is the QueryMany filter matching every record.
func everything[R any](R) bool { return true }

func mapNotFound(err, notFound error) error {
	if errors.Is(err, crud.ErrNotFound) {
		return notFound
	}
	return err
}
