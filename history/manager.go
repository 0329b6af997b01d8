package history

import (
	"errors"
	"sync"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxHistory is the bounded history size used when no override is
// given.
const DefaultMaxHistory = 50

// Command represents one applied user-visible action that can be undone
// and reapplied.
type Command interface {
	// Undo reverses the command's forward effect.
	Undo() error

	// Redo reapplies the command's forward effect after an undo.
	Redo() error

	// Description returns a human-readable description of the command.
	Description() string
}

// Manager tracks a bounded command history with a movable position. One
// manager exists per shared key, or per standalone builder instance.
type Manager struct {
	mu         sync.Mutex
	commands   []Command
	position   int // -1..len(commands)-1; -1 means nothing to undo
	maxEntries int
}

// NewManager creates a history manager holding at most maxEntries commands.
func NewManager(maxEntries int) *Manager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxHistory
	}
	return &Manager{
		position:   -1,
		maxEntries: maxEntries,
	}
}

// Push appends an already-applied command. Any undone commands after the
// current position are discarded first; when the list would exceed capacity
// the oldest entry is evicted and the position stays pinned at the end.
func (m *Manager) Push(cmd Command) {
	if cmd == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.position < len(m.commands)-1 {
		m.commands = m.commands[:m.position+1]
	}
	m.commands = append(m.commands, cmd)

	if len(m.commands) > m.maxEntries {
		excess := len(m.commands) - m.maxEntries
		m.commands = m.commands[excess:]
		m.position = len(m.commands) - 1
	} else {
		m.position++
	}
}

// Undo reverses the command at the current position and steps back.
// Returns ErrNothingToUndo when the position is at -1.
// The lock is released during command execution; the command's own store
// replacement provides the mutation.
func (m *Manager) Undo() error {
	m.mu.Lock()
	if m.position < 0 {
		m.mu.Unlock()
		return ErrNothingToUndo
	}
	cmd := m.commands[m.position]
	m.mu.Unlock()

	if err := cmd.Undo(); err != nil {
		return err
	}

	m.mu.Lock()
	m.position--
	m.mu.Unlock()
	return nil
}

// Redo steps forward and reapplies the next command. Returns
// ErrNothingToRedo when the position is already at the end.
func (m *Manager) Redo() error {
	m.mu.Lock()
	if m.position >= len(m.commands)-1 {
		m.mu.Unlock()
		return ErrNothingToRedo
	}
	cmd := m.commands[m.position+1]
	m.mu.Unlock()

	if err := cmd.Redo(); err != nil {
		return err
	}

	m.mu.Lock()
	m.position++
	m.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position >= 0
}

// CanRedo returns true if redo is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position < len(m.commands)-1
}

// Len returns the number of commands currently held.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.commands)
}

// Clear empties the history. Not itself undoable.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = nil
	m.position = -1
}

// MaxEntries returns the configured capacity.
func (m *Manager) MaxEntries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxEntries
}

// Descriptions returns the descriptions of all held commands, oldest first.
func (m *Manager) Descriptions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.commands))
	for i, cmd := range m.commands {
		out[i] = cmd.Description()
	}
	return out
}
