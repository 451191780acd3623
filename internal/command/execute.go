package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/tellebma/template-discord-bot/internal/cooldown"
	"github.com/tellebma/template-discord-bot/internal/errs"
	"github.com/tellebma/template-discord-bot/internal/logger"
)

// Deps are the injected services the execute pipeline needs. One set per
// process in production; tests build their own.
type Deps struct {
	Cooldowns *cooldown.Tracker
	Errors    *errs.Handler
	Log       *logger.Logger
}

// Execute runs the full invocation chain: permission check, cooldown check,
// parameter extraction and validation, handler invocation. Every failure,
// including a handler panic, goes through the shared error handler, which
// replies to the requester privately.
func (c *Command) Execute(ctx *Context, deps *Deps) {
	start := time.Now()
	meta := errs.RequestMeta{
		UserID:    ctx.UserID(),
		Command:   c.Name,
		ChannelID: ctx.ChannelID(),
		GuildID:   ctx.GuildID(),
	}

	deps.Log.Info("command invoked", map[string]any{
		"command": c.Name,
		"user":    ctx.User().Username,
		"guild":   ctx.GuildName(),
		"channel": ctx.ChannelID(),
	})

	if err := c.checkPermissions(ctx); err != nil {
		deps.Errors.HandleRequest(err, ctx, meta)
		return
	}

	if remaining, ok := deps.Cooldowns.Check(c.Name, ctx.UserID(), c.CooldownDuration()); !ok {
		deps.Errors.HandleRequest(errs.NewCooldown(c.Name, remaining), ctx, meta)
		return
	}

	opts, err := c.extractOptions(ctx)
	if err != nil {
		deps.Errors.HandleRequest(err, ctx, meta)
		return
	}
	ctx.opts = opts

	if err := c.runHandler(ctx); err != nil {
		deps.Errors.HandleRequest(err, ctx, meta)
		return
	}

	deps.Log.Info("command completed", map[string]any{
		"command": c.Name,
		"user":    ctx.User().Username,
		"guild":   ctx.GuildName(),
		"elapsed": time.Since(start).String(),
	})
}

// checkPermissions requires the requester to hold every declared permission.
// DMs carry no member permissions; commands declaring permissions are
// guild-only by construction.
func (c *Command) checkPermissions(ctx *Context) error {
	if len(c.Permissions) == 0 {
		return nil
	}
	held := ctx.MemberPermissions()
	missing := MissingPermissions(c.Permissions, held)
	if len(missing) == 0 {
		return nil
	}
	required := make([]string, 0, len(c.Permissions))
	for _, p := range c.Permissions {
		required = append(required, PermissionName(p))
	}
	return errs.NewPermission(required, HeldNames(held))
}

// runHandler invokes the command body, converting panics and foreign errors
// into taxonomy values.
func (c *Command) runHandler(ctx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			// Reaches the handler as a non-operational unknown.
			err = fmt.Errorf("panic in command %s: %v", c.Name, r)
		}
	}()

	if c.Handler == nil {
		return errs.Newf(errs.CodeInternal, "command %q has no handler", c.Name)
	}
	if err := c.Handler(ctx); err != nil {
		var te errs.Error
		if errors.As(err, &te) {
			return err
		}
		return errs.NewCommand(c.Name, err)
	}
	return nil
}

// extractOptions pulls each declared parameter from the interaction payload
// and validates it. The first failure stops extraction.
func (c *Command) extractOptions(ctx *Context) (map[string]any, error) {
	data := ctx.Interaction.ApplicationCommandData()
	supplied := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, o := range data.Options {
		supplied[o.Name] = o
	}

	out := make(map[string]any, len(c.Options))
	for _, opt := range c.Options {
		raw, present := supplied[opt.Name]
		if !present || raw.Value == nil {
			if opt.Required {
				return nil, errs.NewMissingParameter(opt.Name, string(opt.Type))
			}
			continue
		}

		value, err := c.resolveOption(ctx, raw, opt)
		if err != nil {
			return nil, err
		}
		if err := ValidateOption(value, opt); err != nil {
			return nil, err
		}
		out[opt.Name] = value
	}
	return out, nil
}

// resolveOption converts the wire value into the Go type the validator and
// the handler see.
func (c *Command) resolveOption(ctx *Context, raw *discordgo.ApplicationCommandInteractionDataOption, opt *Option) (any, error) {
	switch opt.Type {
	case TypeString:
		if v, ok := raw.Value.(string); ok {
			return v, nil
		}
	case TypeInteger:
		if v, ok := raw.Value.(float64); ok {
			return int64(v), nil
		}
	case TypeNumber:
		if v, ok := raw.Value.(float64); ok {
			return v, nil
		}
	case TypeBoolean:
		if v, ok := raw.Value.(bool); ok {
			return v, nil
		}
	case TypeUser:
		if id, ok := raw.Value.(string); ok {
			if u := c.resolvedUser(ctx, id); u != nil {
				return u, nil
			}
			return &discordgo.User{ID: id}, nil
		}
	case TypeChannel:
		if id, ok := raw.Value.(string); ok {
			if ch := c.resolvedChannel(ctx, id); ch != nil {
				return ch, nil
			}
			return &discordgo.Channel{ID: id}, nil
		}
	case TypeRole:
		if id, ok := raw.Value.(string); ok {
			if r := c.resolvedRole(ctx, id); r != nil {
				return r, nil
			}
			return &discordgo.Role{ID: id}, nil
		}
	case TypeMentionable:
		if id, ok := raw.Value.(string); ok {
			if u := c.resolvedUser(ctx, id); u != nil {
				return u, nil
			}
			if r := c.resolvedRole(ctx, id); r != nil {
				return r, nil
			}
			return &discordgo.User{ID: id}, nil
		}
	case TypeAttachment:
		if id, ok := raw.Value.(string); ok {
			data := ctx.Interaction.ApplicationCommandData()
			if data.Resolved != nil {
				if a, ok := data.Resolved.Attachments[id]; ok {
					return a, nil
				}
			}
		}
	default:
		// Fail closed on unknown declared types.
		return nil, errs.NewValidation(opt.Name, string(opt.Type), raw.Value,
			fmt.Sprintf("unknown parameter type %q", opt.Type))
	}
	return nil, errs.NewValidation(opt.Name, string(opt.Type), raw.Value, "unexpected wire value")
}

func (c *Command) resolvedUser(ctx *Context, id string) *discordgo.User {
	data := ctx.Interaction.ApplicationCommandData()
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[id]; ok {
			return u
		}
	}
	return nil
}

func (c *Command) resolvedChannel(ctx *Context, id string) *discordgo.Channel {
	data := ctx.Interaction.ApplicationCommandData()
	if data.Resolved != nil {
		if ch, ok := data.Resolved.Channels[id]; ok {
			return ch
		}
	}
	return nil
}

func (c *Command) resolvedRole(ctx *Context, id string) *discordgo.Role {
	data := ctx.Interaction.ApplicationCommandData()
	if data.Resolved != nil {
		if r, ok := data.Resolved.Roles[id]; ok {
			return r
		}
	}
	return nil
}
