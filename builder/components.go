package builder

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyComponentType is returned when registering a component with a
// blank type name.
var ErrEmptyComponentType = errors.New("component type cannot be empty")

// RegisterComponent makes a component definition available to AddItem
// callers by type name. Re-registering a name replaces the definition.
func (b *Builder) RegisterComponent(name string, def any) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyComponentType
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBuilderClosed
	}
	b.components[name] = def
	return nil
}

// Component returns the definition registered under name, if any.
func (b *Builder) Component(name string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	def, ok := b.components[name]
	return def, ok
}

// Components lists registered component type names, sorted.
func (b *Builder) Components() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.components))
	for name := range b.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
