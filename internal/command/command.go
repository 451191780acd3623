// Package command defines the command declaration, its parameter schema and
// validators, and the execute pipeline every interaction runs through:
// permission check, cooldown check, parameter validation, handler invocation.
// All failures funnel through the shared error handler, which replies to the
// requester with a curated message.
package command

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// DefaultCategory is assumed when a declaration leaves Category empty.
const DefaultCategory = "general"

// HandlerFunc is the command body. It receives a Context whose declared
// options are already extracted and validated.
type HandlerFunc func(ctx *Context) error

// Command is the immutable load-time declaration of a slash command. Empty
// Permissions, zero Cooldown, and empty Options simply disable the
// corresponding pipeline stage.
type Command struct {
	Name        string
	Description string
	Category    string
	Permissions []int64 // all listed permissions are required
	Cooldown    int     // seconds; 0 disables the cooldown check
	Options     []*Option
	Handler     HandlerFunc
}

// CategoryOrDefault returns the declared category or "general".
func (c *Command) CategoryOrDefault() string {
	if c.Category == "" {
		return DefaultCategory
	}
	return c.Category
}

// CooldownDuration returns the declared cooldown as a duration.
func (c *Command) CooldownDuration() time.Duration {
	return time.Duration(c.Cooldown) * time.Second
}

// Definition serializes the declaration for the bulk-upsert registration
// endpoint. Options with unknown type tags are skipped.
func (c *Command) Definition() *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Type:        discordgo.ChatApplicationCommand,
	}
	for _, o := range c.Options {
		if od := o.definition(); od != nil {
			def.Options = append(def.Options, od)
		}
	}
	return def
}
