package domain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"project-tracker/internal/board"
	"project-tracker/internal/entities"
	"project-tracker/internal/notify"
	"project-tracker/internal/reconcile"
	"project-tracker/internal/store"

	"go.llib.dev/testcase/clock"
)

// workspace is the state one signed-in session works on: its stores, its board and the queue of
// notifications those produce.
type workspace struct {
	sessionID string
	userID    string
	expiresAt time.Time

	notifications *notify.Queue
	team          *store.TeamMembers
	projects      *store.Projects
	board         *board.Board

	mountMu sync.Mutex
	mounted bool
}

// workspace returns the session's workspace, creating and populating it on first use.
func (u *Usecase) workspace(ctx context.Context, session *entities.Session) (*workspace, error) {
	if session == nil || session.ID == "" {
		return nil, entities.ErrUnauthenticated
	}

	u.mu.Lock()
	now := clock.Now()
	for id, ws := range u.workspaces {
		if !ws.expiresAt.IsZero() && !ws.expiresAt.After(now) {
			delete(u.workspaces, id)
			u.log.Infow("workspace expired", "session_id", id, "user_id", ws.userID)
		}
	}
	ws, ok := u.workspaces[session.ID]
	if !ok {
		ws = u.newWorkspace(session)
		u.workspaces[session.ID] = ws
	}
	u.mu.Unlock()

	if ws.userID != session.UserID {
		return nil, fmt.Errorf("%w: session belongs to another user", entities.ErrUnauthenticated)
	}

	u.mount(ctx, ws)
	return ws, nil
}

// mount populates the workspace stores. A failed fetch leaves the workspace unmounted so the next
// request tries again.
func (u *Usecase) mount(ctx context.Context, ws *workspace) {
	ws.mountMu.Lock()
	defer ws.mountMu.Unlock()
	if ws.mounted {
		return
	}

	// Team fetch failures are recorded by the store itself.
	_ = ws.team.FetchAll(ctx)
	err := ws.projects.FetchAll(ctx)
	if err != nil {
		u.log.Warnw("project fetch failed while mounting workspace", "session_id", ws.sessionID, "error", err)
	}
	ws.mounted = err == nil && ws.team.Loaded()
	if !ws.mounted {
		u.log.Infow("workspace left unmounted", "session_id", ws.sessionID)
	}
}

func (u *Usecase) newWorkspace(session *entities.Session) *workspace {
	log := u.log.With("session_id", session.ID)
	queue := notify.NewQueue(notify.DefaultLimit)
	rc := reconcile.New(log, queue)

	u.log.Infow("workspace created", "session_id", session.ID, "user_id", session.UserID)
	return &workspace{
		sessionID:     session.ID,
		userID:        session.UserID,
		expiresAt:     session.ExpiresAt,
		notifications: queue,
		team:          store.NewTeamMembers(log, u.repo, rc),
		projects:      store.NewProjects(log, u.repo, rc, u.retry),
		board:         board.New(log, u.repo, rc, u.auth.CurrentSession, u.dragTimeout),
	}
}

// forget drops the session's workspace.
func (u *Usecase) forget(sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.workspaces, sessionID)
}

// Workspaces reports how many sessions currently hold a workspace.
func (u *Usecase) Workspaces() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.workspaces)
}
