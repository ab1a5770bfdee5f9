package statusflow

import (
	"context"
	"errors"
	"testing"

	"github.com/marcus/tailor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	updates []models.Status
	deletes []string
	err     error
}

func (f *fakeAPI) UpdateItemStatus(ctx context.Context, itemID string, status models.Status) error {
	f.updates = append(f.updates, status)
	return f.err
}

func (f *fakeAPI) DeleteItem(ctx context.Context, itemID string) error {
	f.deletes = append(f.deletes, itemID)
	return f.err
}

type fakeReloader struct {
	calls int
	err   error
}

func (r *fakeReloader) Reload(ctx context.Context) error {
	r.calls++
	return r.err
}

type memRecorder struct {
	entries []models.HistoryEntry
}

func (m *memRecorder) Record(ctx context.Context, e models.HistoryEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func item(status models.Status, jobStatuses ...string) models.PendingItem {
	it := models.PendingItem{ID: "i1", OrderID: "o1", ProductName: "Kurta", StatusID: status, Status: status.String()}
	for _, s := range jobStatuses {
		it.JobOrderStatus = append(it.JobOrderStatus, models.JobOrderStatus{StatusName: s})
	}
	return it
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name   string
		item   models.PendingItem
		target models.Status
		want   error
	}{
		{"same status", item(models.StatusPending), models.StatusPending, ErrNoChange},
		{"unknown", item(models.StatusPending), models.Status(9), ErrUnknownStatus},
		{"complete without job order", item(models.StatusInProgress), models.StatusCompleted, ErrJobOrderIncomplete},
		{"complete with open job order", item(models.StatusInProgress, "Completed", "Cutting"), models.StatusCompleted, ErrJobOrderIncomplete},
		{"complete with finished job order", item(models.StatusInProgress, "Cutting", "Completed"), models.StatusCompleted, nil},
		{"cancel", item(models.StatusPending), models.StatusCancelled, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.item, tt.target)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNoOpRejectedWithoutRemoteCall(t *testing.T) {
	api := &fakeAPI{}
	rel := &fakeReloader{}
	f := New(api, nil)

	err := f.ChangeStatusAndReload(context.Background(), rel, item(models.StatusPending), models.StatusPending)
	assert.ErrorIs(t, err, ErrNoChange)
	assert.Empty(t, api.updates)
	assert.Zero(t, rel.calls, "local rejection must not reload")
}

func TestChangeStatusReloadsAfterRemoteCall(t *testing.T) {
	api := &fakeAPI{}
	rel := &fakeReloader{}
	rec := &memRecorder{}
	f := New(api, rec)

	err := f.ChangeStatusAndReload(context.Background(), rel, item(models.StatusPending), models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, []models.Status{models.StatusInProgress}, api.updates)
	assert.Equal(t, 1, rel.calls)

	require.Len(t, rec.entries, 1)
	assert.True(t, rec.entries[0].OK)
	assert.Equal(t, models.HistoryStatusChange, rec.entries[0].Action)
	assert.Equal(t, "Kurta: Pending -> In Progress", rec.entries[0].Detail)
}

func TestRemoteFailureStillReloads(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	rel := &fakeReloader{}
	rec := &memRecorder{}
	f := New(api, rec)

	err := f.ChangeStatusAndReload(context.Background(), rel, item(models.StatusPending), models.StatusCancelled)
	require.Error(t, err)
	assert.Equal(t, 1, rel.calls)
	require.Len(t, rec.entries, 1)
	assert.False(t, rec.entries[0].OK)
	assert.Equal(t, "boom", rec.entries[0].Error)
}

func TestReloadFailureReported(t *testing.T) {
	f := New(&fakeAPI{}, nil)
	rel := &fakeReloader{err: errors.New("offline")}

	err := f.ChangeStatusAndReload(context.Background(), rel, item(models.StatusPending), models.StatusCancelled)
	assert.ErrorContains(t, err, "reload")
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{}
	rel := &fakeReloader{}
	f := New(api, nil)

	err := f.DeleteAndReload(context.Background(), rel, item(models.StatusPending, "Completed"))
	assert.ErrorIs(t, err, ErrDeleteLocked)
	assert.Empty(t, api.deletes)
	assert.Zero(t, rel.calls)

	err = f.DeleteAndReload(context.Background(), rel, item(models.StatusPending, "Cutting"))
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, api.deletes)
	assert.Equal(t, 1, rel.calls)
}

func TestOptions(t *testing.T) {
	opts := Options(item(models.StatusInProgress))
	require.Len(t, opts, 4)

	byStatus := map[models.Status]Option{}
	for _, o := range opts {
		byStatus[o.Status] = o
	}
	assert.True(t, byStatus[models.StatusPending].Enabled())
	assert.False(t, byStatus[models.StatusInProgress].Enabled())
	assert.True(t, byStatus[models.StatusInProgress].Current)
	assert.False(t, byStatus[models.StatusCompleted].Enabled())
	assert.True(t, byStatus[models.StatusCancelled].Enabled())
}
