package pager

// Trigger decides when scrolling has reached the end of the loaded rows.
//
// After every render the view reports the sentinel (the key of the last
// loaded row) and whether it is inside the viewport. The trigger fires once
// on the hidden-to-visible edge for a given sentinel. When the sentinel
// changes the old observation is dropped, so a re-rendered list never
// answers for a row that is no longer last.
type Trigger struct {
	connected bool
	sentinel  string
	visible   bool
}

// NewTrigger returns a connected trigger.
func NewTrigger() *Trigger {
	return &Trigger{connected: true}
}

// Connect re-arms a disconnected trigger.
func (t *Trigger) Connect() {
	t.connected = true
	t.sentinel = ""
	t.visible = false
}

// Disconnect stops the trigger from firing until Connect is called.
func (t *Trigger) Disconnect() {
	t.connected = false
	t.sentinel = ""
	t.visible = false
}

// Connected reports whether the trigger is observing.
func (t *Trigger) Connected() bool { return t.connected }

// Observe records the sentinel's visibility and reports whether the next
// page should be requested: the sentinel just became visible, there are more
// pages, and nothing is loading.
func (t *Trigger) Observe(sentinel string, visible, hasMorePages, loading bool) bool {
	if !t.connected || sentinel == "" {
		return false
	}
	if sentinel != t.sentinel {
		t.sentinel = sentinel
		t.visible = false
	}

	becameVisible := visible && !t.visible
	t.visible = visible
	if !becameVisible {
		return false
	}
	if !hasMorePages || loading {
		// Stay armed: the edge is consumed only when it leads to a request.
		t.visible = false
		return false
	}
	return true
}
