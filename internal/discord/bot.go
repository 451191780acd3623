// Package discord owns the gateway session: it connects, registers slash
// commands per guild, and routes interactions into the command pipeline.
package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/tellebma/template-discord-bot/internal/command"
	"github.com/tellebma/template-discord-bot/internal/config"
	"github.com/tellebma/template-discord-bot/internal/cooldown"
	"github.com/tellebma/template-discord-bot/internal/errs"
	"github.com/tellebma/template-discord-bot/internal/logger"
)

// Bot is the Discord-facing runtime. Every collaborator is injected; nothing
// here reaches for package-level state.
type Bot struct {
	session   *discordgo.Session
	registry  *command.Registry
	cooldowns *cooldown.Tracker
	errors    *errs.Handler
	log       *logger.Logger
	cfg       *config.Config

	// registerLimiter paces command upserts to stay under Discord's limit.
	registerLimiter *rate.Limiter
}

// New builds a Bot around an authenticated session.
func New(cfg *config.Config, registry *command.Registry, cooldowns *cooldown.Tracker, errors *errs.Handler, log *logger.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	b := &Bot{
		session:         session,
		registry:        registry,
		cooldowns:       cooldowns,
		errors:          errors,
		log:             log,
		cfg:             cfg,
		registerLimiter: rate.NewLimiter(rate.Every(25*time.Millisecond), 1),
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	session.AddHandler(b.onReady)
	session.AddHandler(b.onGuildCreate)
	session.AddHandler(b.onInteractionCreate)

	return b, nil
}

// Session exposes the underlying gateway session.
func (b *Bot) Session() *discordgo.Session { return b.session }

// Run opens the gateway connection and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.session.Close()

	<-ctx.Done()
	b.log.Info("shutdown signal received, closing session", nil)
	return nil
}

// onReady syncs commands for every guild the bot is already in.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		b.registerCommands(g.ID)
	}
	b.log.Info("bot is running", map[string]any{
		"username": r.User.Username,
		"guilds":   len(r.Guilds),
		"commands": b.registry.Len(),
	})
}

// onGuildCreate syncs commands when the bot joins a new guild.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.log.Info("joined guild", map[string]any{"guild": g.Guild.ID, "name": g.Guild.Name})
	b.registerCommands(g.Guild.ID)
}

// onInteractionCreate routes a slash command invocation into the pipeline.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.CommandType != discordgo.ChatApplicationCommand && data.CommandType != 0 {
		return
	}

	name := data.Name
	cmd, ok := b.registry.Get(name)
	if !ok {
		b.log.Warn("unknown command", map[string]any{"command": name})
		ctx := command.NewContext(s, i, nil, b.log)
		b.errors.HandleRequest(
			errs.Newf(errs.CodeCommandNotFound, "no handler registered for command %q", name),
			ctx,
			errs.RequestMeta{UserID: ctx.UserID(), Command: name, ChannelID: ctx.ChannelID(), GuildID: ctx.GuildID()},
		)
		return
	}

	ctx := command.NewContext(s, i, cmd, b.log)
	cmd.Execute(ctx, &command.Deps{
		Cooldowns: b.cooldowns,
		Errors:    b.errors,
		Log:       b.log,
	})
}
