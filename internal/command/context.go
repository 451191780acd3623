package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/tellebma/template-discord-bot/internal/logger"
)

// Responder sends interaction responses. The default implementation talks to
// the session directly; tests inject a fake so no network is touched.
type Responder interface {
	Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) error
	Defer(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error
	Followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) error
	Edit(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error
}

// sessionResponder is the production Responder.
type sessionResponder struct{}

func (sessionResponder) Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func (sessionResponder) Defer(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

func (sessionResponder) Followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) error {
	params := &discordgo.WebhookParams{Content: content}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	_, err := s.FollowupMessageCreate(i.Interaction, true, params)
	return err
}

func (sessionResponder) Edit(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
	return err
}

// Context is what the runtime hands a command handler: the session and event,
// the validated option values keyed by declared name, and reply helpers that
// track whether the interaction has been acknowledged.
type Context struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Log         *logger.Logger

	command   *Command
	opts      map[string]any
	responder Responder
	acked     bool
}

// NewContext builds a Context for one invocation. Option values are filled
// in by the execute pipeline after validation.
func NewContext(s *discordgo.Session, i *discordgo.InteractionCreate, cmd *Command, log *logger.Logger) *Context {
	return &Context{
		Session:     s,
		Interaction: i,
		Log:         log,
		command:     cmd,
		opts:        make(map[string]any),
		responder:   sessionResponder{},
	}
}

// Command returns the declaration being executed.
func (c *Context) Command() *Command { return c.command }

// User returns the invoking user, whether the interaction came from a guild
// or a DM.
func (c *Context) User() *discordgo.User {
	if c.Interaction.Member != nil && c.Interaction.Member.User != nil {
		return c.Interaction.Member.User
	}
	if c.Interaction.User != nil {
		return c.Interaction.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}

func (c *Context) UserID() string    { return c.User().ID }
func (c *Context) GuildID() string   { return c.Interaction.GuildID }
func (c *Context) ChannelID() string { return c.Interaction.ChannelID }

// GuildName resolves the guild name from state, or a DM marker.
func (c *Context) GuildName() string {
	if c.Interaction.GuildID == "" {
		return "DM"
	}
	if c.Session != nil && c.Session.State != nil {
		if g, err := c.Session.State.Guild(c.Interaction.GuildID); err == nil {
			return g.Name
		}
	}
	return c.Interaction.GuildID
}

// MemberPermissions returns the requester's computed permissions in the
// invoking channel. Zero in DMs.
func (c *Context) MemberPermissions() int64 {
	if c.Interaction.Member == nil {
		return 0
	}
	return c.Interaction.Member.Permissions
}

// --- Option getters ---

// Has reports whether the named option was supplied.
func (c *Context) Has(name string) bool {
	_, ok := c.opts[name]
	return ok
}

// String returns the named string option, or "".
func (c *Context) String(name string) string {
	v, _ := c.opts[name].(string)
	return v
}

// Integer returns the named integer option, or 0.
func (c *Context) Integer(name string) int64 {
	v, _ := c.opts[name].(int64)
	return v
}

// Number returns the named number option, or 0.
func (c *Context) Number(name string) float64 {
	v, _ := c.opts[name].(float64)
	return v
}

// Bool returns the named boolean option, or false.
func (c *Context) Bool(name string) bool {
	v, _ := c.opts[name].(bool)
	return v
}

// UserOption returns the named user option, or nil.
func (c *Context) UserOption(name string) *discordgo.User {
	v, _ := c.opts[name].(*discordgo.User)
	return v
}

// Channel returns the named channel option, or nil.
func (c *Context) Channel(name string) *discordgo.Channel {
	v, _ := c.opts[name].(*discordgo.Channel)
	return v
}

// Role returns the named role option, or nil.
func (c *Context) Role(name string) *discordgo.Role {
	v, _ := c.opts[name].(*discordgo.Role)
	return v
}

// Mentionable returns the named mentionable option: *discordgo.User,
// *discordgo.Role, or nil.
func (c *Context) Mentionable(name string) any {
	return c.opts[name]
}

// Attachment returns the named attachment option, or nil.
func (c *Context) Attachment(name string) *discordgo.MessageAttachment {
	v, _ := c.opts[name].(*discordgo.MessageAttachment)
	return v
}

// --- Replies ---

// Reply sends the initial public response.
func (c *Context) Reply(content string) error {
	if err := c.responder.Respond(c.Session, c.Interaction, content, false); err != nil {
		return err
	}
	c.acked = true
	return nil
}

// ReplyEphemeral sends the initial response visible only to the requester.
func (c *Context) ReplyEphemeral(content string) error {
	if err := c.responder.Respond(c.Session, c.Interaction, content, true); err != nil {
		return err
	}
	c.acked = true
	return nil
}

// DeferReply acknowledges the interaction so a follow-up can arrive later.
func (c *Context) DeferReply(ephemeral bool) error {
	if err := c.responder.Defer(c.Session, c.Interaction, ephemeral); err != nil {
		return err
	}
	c.acked = true
	return nil
}

// Followup sends a public follow-up message.
func (c *Context) Followup(content string) error {
	return c.responder.Followup(c.Session, c.Interaction, content, false)
}

// FollowupEphemeral sends a follow-up visible only to the requester.
func (c *Context) FollowupEphemeral(content string) error {
	return c.responder.Followup(c.Session, c.Interaction, content, true)
}

// EditReply edits the initial response (after Reply or DeferReply).
func (c *Context) EditReply(content string) error {
	return c.responder.Edit(c.Session, c.Interaction, content)
}

// Acknowledged reports whether the interaction already received a reply or
// a deferred acknowledgement.
func (c *Context) Acknowledged() bool { return c.acked }
