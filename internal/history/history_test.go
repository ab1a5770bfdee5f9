package history

import (
	"context"
	"testing"
	"time"

	"github.com/marcus/tailor/internal/models"
)

func TestOpenCreatesSchema(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != SchemaVersion {
		t.Errorf("schema version = %d, want %d", v, SchemaVersion)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Record(ctx, models.HistoryEntry{Action: models.HistoryDelete, RowID: "7", OK: true}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	s.Close()

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	got, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].RowID != "7" || got[0].ID == "" {
		t.Errorf("unexpected entries: %+v", got)
	}
}

func TestListFiltersAndOrder(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []models.HistoryEntry{
		{Timestamp: base, Action: models.HistoryStatusChange, RowID: "1", Detail: "first", OK: true},
		{Timestamp: base.Add(time.Minute), Action: models.HistoryDelete, RowID: "2", Detail: "second", OK: false, Error: "not found"},
		{Timestamp: base.Add(2 * time.Minute), Action: models.HistoryStatusChange, RowID: "1", Detail: "third", OK: true},
	}
	for _, e := range entries {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"all newest first", ListOptions{}, []string{"third", "second", "first"}},
		{"by action", ListOptions{Action: models.HistoryStatusChange}, []string{"third", "first"}},
		{"by row", ListOptions{RowID: "2"}, []string{"second"}},
		{"since", ListOptions{Since: base.Add(time.Minute)}, []string{"third", "second"}},
		{"limit", ListOptions{Limit: 1}, []string{"third"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.opts)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.Detail != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, e.Detail, tt.want[i])
				}
			}
		})
	}

	failed, _ := s.List(ctx, ListOptions{RowID: "2"})
	if failed[0].OK || failed[0].Error != "not found" {
		t.Errorf("failure not preserved: %+v", failed[0])
	}
}
