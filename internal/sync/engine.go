// Package sync reconciles a client's offline task list with the server's
// copy. The protocol is last-write-wins per task, with the server-held
// UpdatedAt as the clock: whichever side holds the newer version of a task
// keeps it, and the response tells the client exactly which tasks it must
// overwrite locally to converge.
package sync

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/sirupsen/logrus"

	"habitsync/internal/model"
	"habitsync/internal/timeutil"
)

// ErrMissingOwner rejects a batch before any store access.
var ErrMissingOwner = errors.New("owner id is required")

// TaskStore is the slice of task storage the engine needs.
type TaskStore interface {
	FindAllByOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	Insert(ctx context.Context, task *model.Task) error
	Replace(ctx context.Context, task *model.Task) error
}

// TaskPayload is one task as sent by a syncing client. Date fields accept
// epoch milliseconds or calendar strings; see timeutil.Instant.
type TaskPayload struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Day         timeutil.Instant `json:"day"`
	Daytime     int              `json:"daytime"`
	Notify      bool             `json:"notify"`
	Recurring   string           `json:"recurring"`
	CompletedAt timeutil.Instant `json:"completedAt"`
	Deleted     bool             `json:"deleted"`
	UpdatedAt   timeutil.Instant `json:"updatedAt"`
	CreatedAt   timeutil.Instant `json:"createdAt"`
}

func (p TaskPayload) toModel(updatedAt time.Time) model.Task {
	task := model.Task{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Day:         p.Day.TimePtr(),
		Daytime:     p.Daytime,
		Notify:      p.Notify,
		Recurring:   p.Recurring,
		CompletedAt: p.CompletedAt.TimePtr(),
		Deleted:     p.Deleted,
		UpdatedAt:   updatedAt,
	}
	if p.CreatedAt.Valid {
		task.CreatedAt = p.CreatedAt.Time
	}
	return task
}

// Engine merges incoming task batches against the stored snapshot. Calls
// for the same owner are serialized: two interleaved reconciliations would
// otherwise race between snapshot load and write-back and silently drop
// one side's updates.
type Engine struct {
	store TaskStore
	log   *logrus.Logger
	now   func() time.Time

	mu     stdsync.Mutex
	owners map[string]*stdsync.Mutex
}

func NewEngine(store TaskStore, log *logrus.Logger) *Engine {
	return &Engine{
		store:  store,
		log:    log,
		now:    time.Now,
		owners: make(map[string]*stdsync.Mutex),
	}
}

func (e *Engine) lockOwner(ownerID string) func() {
	e.mu.Lock()
	m, ok := e.owners[ownerID]
	if !ok {
		m = &stdsync.Mutex{}
		e.owners[ownerID] = m
	}
	e.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Reconcile merges the batch into the owner's stored tasks and returns the
// override set: the stored tasks the client must adopt locally. A task the
// client just won (created or overwrote) is not echoed back; the client
// already holds the authoritative value.
func (e *Engine) Reconcile(ctx context.Context, ownerID string, batch []TaskPayload) ([]model.Task, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}

	unlock := e.lockOwner(ownerID)
	defer unlock()

	now := e.now()

	// Entries without an id cannot be merged and are dropped. A duplicated
	// id keeps the occurrence with the newest effective modification time,
	// so a stale duplicate later in the batch cannot shadow a newer one.
	type entry struct {
		payload TaskPayload
		mtime   time.Time
	}
	incoming := make(map[string]entry, len(batch))
	order := make([]string, 0, len(batch))
	skipped := 0
	for _, p := range batch {
		if p.ID == "" {
			skipped++
			continue
		}
		mtime := now
		if p.UpdatedAt.Valid {
			mtime = p.UpdatedAt.Time
		}
		prev, seen := incoming[p.ID]
		if !seen {
			order = append(order, p.ID)
		} else if !mtime.After(prev.mtime) {
			continue
		}
		incoming[p.ID] = entry{payload: p, mtime: mtime}
	}
	if skipped > 0 {
		e.log.WithFields(logrus.Fields{"owner": ownerID, "skipped": skipped}).
			Warn("sync batch entries without id dropped")
	}

	snapshot, err := e.store.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	stored := make(map[string]model.Task, len(snapshot))
	for _, t := range snapshot {
		stored[t.ID] = t
	}

	override := make([]model.Task, 0)
	inOverride := make(map[string]bool)

	for _, id := range order {
		p := incoming[id].payload
		mtime := incoming[id].mtime
		// Ownership comes from the caller, never from the payload.
		p.UserID = ownerID

		existing, ok := stored[id]
		if !ok {
			task := p.toModel(mtime)
			if err := e.store.Insert(ctx, &task); err != nil {
				return nil, fmt.Errorf("insert task %s: %w", id, err)
			}
			continue
		}

		switch {
		case mtime.After(existing.UpdatedAt):
			updated := p.toModel(mtime)
			updated.CreatedAt = existing.CreatedAt
			if err := e.store.Replace(ctx, &updated); err != nil {
				return nil, fmt.Errorf("replace task %s: %w", id, err)
			}
		case existing.UpdatedAt.After(mtime):
			if !inOverride[id] {
				override = append(override, existing)
				inOverride[id] = true
			}
		default:
			// Equal clocks: both sides already hold the same version.
		}
	}

	// Tasks the client never mentioned must be pushed down to it.
	for _, t := range snapshot {
		if _, mentioned := incoming[t.ID]; mentioned {
			continue
		}
		if inOverride[t.ID] {
			continue
		}
		override = append(override, t)
		inOverride[t.ID] = true
	}

	return override, nil
}
