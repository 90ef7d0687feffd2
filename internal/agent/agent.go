// Package agent tracks the named-agent table configured on a session and
// the single active agent a client may switch to at runtime.
package agent

import (
	"sort"
	"sync"

	"github.com/nshkrdotcom/claude-agent-sdk-sub002/internal/config"
	"github.com/nshkrdotcom/claude-agent-sdk-sub002/internal/errors"
)

// Table is the immutable set of named agents configured for a session.
type Table struct {
	definitions map[string]*config.AgentDefinition
}

// NewTable builds a Table from the agent definitions supplied via
// WithAgents. A nil or empty map produces an empty (not nil) Table so
// callers can always invoke its methods.
func NewTable(definitions map[string]*config.AgentDefinition) *Table {
	t := &Table{definitions: make(map[string]*config.AgentDefinition, len(definitions))}
	for name, def := range definitions {
		if def == nil {
			continue
		}

		t.definitions[name] = def
	}

	return t
}

// Len reports how many agents are configured.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.definitions)
}

// Names returns the configured agent names in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}

	names := make([]string, 0, len(t.definitions))
	for name := range t.definitions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Lookup returns the definition for name, or nil if absent.
func (t *Table) Lookup(name string) *config.AgentDefinition {
	if t == nil {
		return nil
	}

	return t.definitions[name]
}

// ActiveView tracks which named agent, if any, is currently active.
type ActiveView struct {
	mu     sync.RWMutex
	table  *Table
	active string
}

// NewActiveView creates an ActiveView bound to the given table. No agent is
// active until SetActive succeeds.
func NewActiveView(table *Table) *ActiveView {
	return &ActiveView{table: table}
}

// Validate checks that name can become the active agent: the table must be
// non-empty and must contain name.
func (v *ActiveView) Validate(name string) error {
	if v.table.Len() == 0 {
		return &errors.NoAgentsConfiguredError{}
	}

	if v.table.Lookup(name) == nil {
		return &errors.AgentNotFoundError{Name: name, Available: v.table.Names()}
	}

	return nil
}

// Commit records name as the active agent. Callers should call Validate
// first and only Commit after the corresponding control request succeeds.
func (v *ActiveView) Commit(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.active = name
}

// Active returns the name of the currently active agent and its definition.
// Returns ("", nil) if no agent is active.
func (v *ActiveView) Active() (string, *config.AgentDefinition) {
	v.mu.RLock()
	name := v.active
	v.mu.RUnlock()

	if name == "" {
		return "", nil
	}

	return name, v.table.Lookup(name)
}

// Available returns the configured agent names, sorted.
func (v *ActiveView) Available() []string {
	return v.table.Names()
}
