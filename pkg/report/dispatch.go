package report

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Dispatcher delivers messages raised off the update loop, such as the
// long-press timer, to the running program. Messages sent while detached
// are dropped.
type Dispatcher struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewDispatcher returns a detached Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Attach routes messages to send, typically (*tea.Program).Send.
func (d *Dispatcher) Attach(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	d.mu.Unlock()
}

// Detach stops delivery.
func (d *Dispatcher) Detach() {
	d.mu.Lock()
	d.send = nil
	d.mu.Unlock()
}

// Send delivers msg if attached. The lock is not held while sending so a
// blocked program cannot stall Detach.
func (d *Dispatcher) Send(msg tea.Msg) {
	if d == nil {
		return
	}
	d.mu.Lock()
	send := d.send
	d.mu.Unlock()
	if send != nil {
		send(msg)
	}
}
