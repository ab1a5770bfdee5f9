package pager

import "testing"

func TestTriggerFiresOnVisibleEdge(t *testing.T) {
	tr := NewTrigger()

	if tr.Observe("o-1", false, true, false) {
		t.Fatal("hidden sentinel must not fire")
	}
	if !tr.Observe("o-1", true, true, false) {
		t.Fatal("sentinel becoming visible should fire")
	}
	if tr.Observe("o-1", true, true, false) {
		t.Fatal("sentinel staying visible must not fire again")
	}
}

func TestTriggerRearmsOnNewSentinel(t *testing.T) {
	tr := NewTrigger()
	tr.Observe("o-1", true, true, false)

	if !tr.Observe("o-2", true, true, false) {
		t.Fatal("a new sentinel that is visible should fire")
	}
}

func TestTriggerRespectsLoadingAndHasMore(t *testing.T) {
	tests := []struct {
		name         string
		hasMore      bool
		loading      bool
		wantFire     bool
		wantLaterHit bool
	}{
		{"ready", true, false, true, false},
		{"loading", true, true, false, true},
		{"no more pages", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTrigger()
			if got := tr.Observe("o-1", true, tt.hasMore, tt.loading); got != tt.wantFire {
				t.Fatalf("first observe = %v, want %v", got, tt.wantFire)
			}
			// Loading finished while the sentinel stayed on screen.
			if got := tr.Observe("o-1", true, tt.hasMore, false); got != tt.wantLaterHit {
				t.Errorf("second observe = %v, want %v", got, tt.wantLaterHit)
			}
		})
	}
}

func TestTriggerDisconnect(t *testing.T) {
	tr := NewTrigger()
	tr.Disconnect()
	if tr.Connected() {
		t.Fatal("expected disconnected")
	}
	if tr.Observe("o-1", true, true, false) {
		t.Fatal("disconnected trigger must not fire")
	}

	tr.Connect()
	if !tr.Observe("o-1", true, true, false) {
		t.Fatal("reconnected trigger should fire")
	}
}

func TestTriggerIgnoresEmptySentinel(t *testing.T) {
	tr := NewTrigger()
	if tr.Observe("", true, true, false) {
		t.Fatal("empty list has no sentinel")
	}
}
