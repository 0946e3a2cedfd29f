package modal

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Host opens modals on behalf of widgets. Opening is fire-and-forget.
type Host interface {
	Open(m Modal)
}

// initer is implemented by modals that start with a command (animations)
type initer interface {
	Init() tea.Cmd
}

// QueueHost collects modals opened while handling a message. The main
// Update loop drains it into PushModalMsg commands after dispatching input to
// widgets, which keeps widgets from calling back into the program.
type QueueHost struct {
	mu      sync.Mutex
	pending []Modal
}

// NewQueueHost creates an empty host
func NewQueueHost() *QueueHost {
	return &QueueHost{}
}

// Open queues m to be pushed on the next Flush
func (h *QueueHost) Open(m Modal) {
	if m == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, m)
}

// Pending returns the number of queued modals
func (h *QueueHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// Flush returns a command pushing every queued modal, or nil if none
func (h *QueueHost) Flush() tea.Cmd {
	h.mu.Lock()
	pending := h.pending
	h.pending = nil
	h.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(pending))
	for _, m := range pending {
		msg := PushModalMsg{Modal: m}
		if i, ok := m.(initer); ok {
			msg.Cmd = i.Init()
		}
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
