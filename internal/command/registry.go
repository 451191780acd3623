package command

import (
	"sort"

	"github.com/bwmarrin/discordgo"
)

// Registry holds every command the process serves, keyed by name. The set is
// fixed at startup; registering the same name twice keeps the last entry.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds declarations to the registry. Later entries with the same
// name win.
func (r *Registry) Register(cmds ...*Command) {
	for _, c := range cmds {
		r.commands[c.Name] = c
	}
}

// Get looks up a command by name.
func (r *Registry) Get(name string) (*Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// All returns every registered command, sorted by name.
func (r *Registry) All() []*Command {
	out := make([]*Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Definitions serializes every registered command for bulk registration,
// sorted by name so the payload is stable.
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	cmds := r.All()
	defs := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, c := range cmds {
		defs = append(defs, c.Definition())
	}
	return defs
}

// Len returns the number of registered commands.
func (r *Registry) Len() int { return len(r.commands) }
