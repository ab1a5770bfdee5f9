// Package statusflow validates and applies mutations to pending sales items.
//
// Local checks run first and reject without touching the API. Once the API
// has been called, the report is reloaded from page 1 whatever the outcome;
// rows are never patched locally.
package statusflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/tailor/internal/models"
)

// Local rejections.
var (
	ErrNoChange           = errors.New("item already has this status")
	ErrUnknownStatus      = errors.New("unknown status")
	ErrJobOrderIncomplete = errors.New("job order must be completed first")
	ErrDeleteLocked       = errors.New("item with a completed job order cannot be deleted")
)

// API is the part of the report API the flow mutates through.
type API interface {
	UpdateItemStatus(ctx context.Context, itemID string, status models.Status) error
	DeleteItem(ctx context.Context, itemID string) error
}

// Recorder stores mutation history. It may be nil.
type Recorder interface {
	Record(ctx context.Context, e models.HistoryEntry) error
}

// Reloader refetches page 1 of the report.
type Reloader interface {
	Reload(ctx context.Context) error
}

// CheckTransition reports why item may not move to target, or nil.
func CheckTransition(item models.PendingItem, target models.Status) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownStatus, int(target))
	}
	if item.StatusID == target {
		return ErrNoChange
	}
	if target == models.StatusCompleted && !item.JobOrderCompleted() {
		return ErrJobOrderIncomplete
	}
	return nil
}

// CheckDelete reports why item may not be deleted, or nil.
func CheckDelete(item models.PendingItem) error {
	if item.JobOrderCompleted() {
		return ErrDeleteLocked
	}
	return nil
}

// Option is one entry of the status picker
type Option struct {
	Status  models.Status
	Current bool
	Err     error // non-nil when the entry is disabled
}

// Enabled reports whether the option can be chosen
func (o Option) Enabled() bool { return o.Err == nil }

// Options lists every status with its availability for item.
func Options(item models.PendingItem) []Option {
	opts := make([]Option, 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		opts = append(opts, Option{
			Status:  s,
			Current: item.StatusID == s,
			Err:     CheckTransition(item, s),
		})
	}
	return opts
}

// Flow applies status changes and deletions.
type Flow struct {
	api     API
	history Recorder
	now     func() time.Time
}

// New returns a Flow. history may be nil.
func New(api API, history Recorder) *Flow {
	return &Flow{api: api, history: history, now: time.Now}
}

// ChangeStatus validates and posts a status change. It does not reload.
func (f *Flow) ChangeStatus(ctx context.Context, item models.PendingItem, target models.Status) error {
	if err := CheckTransition(item, target); err != nil {
		return err
	}

	err := f.api.UpdateItemStatus(ctx, item.ID, target)
	f.record(ctx, models.HistoryStatusChange, item.ID,
		fmt.Sprintf("%s: %s -> %s", item.ProductName, item.StatusID, target), err)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// Delete validates and deletes item. It does not reload.
func (f *Flow) Delete(ctx context.Context, item models.PendingItem) error {
	if err := CheckDelete(item); err != nil {
		return err
	}

	err := f.api.DeleteItem(ctx, item.ID)
	f.record(ctx, models.HistoryDelete, item.ID,
		fmt.Sprintf("%s for %s", item.ProductName, item.CustomerName), err)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ChangeStatusAndReload runs ChangeStatus and, if the API was called,
// reloads page 1.
func (f *Flow) ChangeStatusAndReload(ctx context.Context, r Reloader, item models.PendingItem, target models.Status) error {
	err := f.ChangeStatus(ctx, item, target)
	return f.reloadAfter(ctx, r, err)
}

// DeleteAndReload runs Delete and, if the API was called, reloads page 1.
func (f *Flow) DeleteAndReload(ctx context.Context, r Reloader, item models.PendingItem) error {
	err := f.Delete(ctx, item)
	return f.reloadAfter(ctx, r, err)
}

func (f *Flow) reloadAfter(ctx context.Context, r Reloader, opErr error) error {
	if IsLocalRejection(opErr) {
		return opErr
	}
	if err := r.Reload(ctx); err != nil {
		slog.Warn("statusflow: reload after mutation", "err", err)
		if opErr == nil {
			return fmt.Errorf("reload: %w", err)
		}
	}
	return opErr
}

// IsLocalRejection reports whether err was raised before calling the API.
func IsLocalRejection(err error) bool {
	return errors.Is(err, ErrNoChange) ||
		errors.Is(err, ErrUnknownStatus) ||
		errors.Is(err, ErrJobOrderIncomplete) ||
		errors.Is(err, ErrDeleteLocked)
}

func (f *Flow) record(ctx context.Context, action models.HistoryAction, rowID, detail string, err error) {
	if f.history == nil {
		return
	}
	e := models.HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: f.now(),
		Action:    action,
		RowID:     rowID,
		Detail:    detail,
		OK:        err == nil,
	}
	if err != nil {
		e.Error = err.Error()
	}
	if rerr := f.history.Record(ctx, e); rerr != nil {
		slog.Warn("statusflow: record history", "err", rerr)
	}
}
