/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package ops

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
)

// CommandGroup is the help section a command is listed under.
type CommandGroup string

const (
	GroupContent CommandGroup = "content" // audit, index, refresh, sitemap
	GroupPublish CommandGroup = "publish" // sync
	GroupSupport CommandGroup = "support" // version
)

// GroupOrder is the order groups appear in help output.
var GroupOrder = []CommandGroup{GroupContent, GroupPublish, GroupSupport}

var groupTitles = map[CommandGroup]string{
	GroupContent: "Content Commands",
	GroupPublish: "Publish Commands",
	GroupSupport: "Support Commands",
}

// Title is the help heading of a group.
func (g CommandGroup) Title() string {
	if t, ok := groupTitles[g]; ok {
		return t
	}
	return string(g)
}

// CommandRegistration is one command as listed in help.
type CommandRegistration struct {
	Name        string
	Group       CommandGroup
	Command     *cobra.Command
	Description string
}

// Registry records which group each command of a tree belongs to.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*CommandRegistration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*CommandRegistration)}
}

var globalRegistry = NewRegistry()

// GetRegistry returns the registry behind the process-wide command tree.
func GetRegistry() *Registry {
	return globalRegistry
}

// Register adds a command. Names are unique per registry.
func (r *Registry) Register(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}
	r.commands[name] = &CommandRegistration{
		Name:        name,
		Group:       group,
		Command:     cmd,
		Description: description,
	}
	return nil
}

// GetCommand returns a registered command by name
func (r *Registry) GetCommand(name string) (*CommandRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommandsByGroup returns the commands of a group sorted by name.
func (r *Registry) GetCommandsByGroup(group CommandGroup) []*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*CommandRegistration
	for _, reg := range r.commands {
		if reg.Group == group {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
