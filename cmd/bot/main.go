package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tellebma/template-discord-bot/internal/command"
	"github.com/tellebma/template-discord-bot/internal/commands"
	"github.com/tellebma/template-discord-bot/internal/config"
	"github.com/tellebma/template-discord-bot/internal/cooldown"
	"github.com/tellebma/template-discord-bot/internal/discord"
	"github.com/tellebma/template-discord-bot/internal/errs"
	"github.com/tellebma/template-discord-bot/internal/logger"
	"github.com/tellebma/template-discord-bot/internal/storage"
	v "github.com/tellebma/template-discord-bot/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	log.Info("starting bot", map[string]any{"app": v.AppName, "version": v.Version})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(ctx, cfg.StoragePath)
	if err != nil {
		log.Error("failed to open storage", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer store.Close()

	cooldowns := cooldown.NewTracker()
	go cooldown.RunSweeper(ctx, cooldowns, time.Minute, log)

	errHandler := errs.NewHandler(log)

	usage := storage.UsageLogger(store, log)
	registry := command.NewRegistry()
	registry.Register(
		commands.Ping().Use(usage),
		commands.Echo().Use(usage),
		commands.Roll().Use(usage),
		commands.Purge().Use(usage),
		commands.History(store).Use(usage),
	)

	bot, err := discord.New(cfg, registry, cooldowns, errHandler, log)
	if err != nil {
		log.Error("failed to create bot", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info("received signal, shutting down", map[string]any{"signal": s.String()})
		cancel()
	case err := <-errCh:
		cancel()
		if err != nil {
			log.Error("bot error", map[string]any{"error": err.Error()})
			store.Close()
			os.Exit(1)
		}
	}

	// Run closes the gateway session on its way out; wait for it so the
	// disconnect happens before the process exits.
	if err := drainBot(errCh); err != nil {
		log.Error("bot error", map[string]any{"error": err.Error()})
		store.Close()
		os.Exit(1)
	}

	log.Info("bot exited cleanly", nil)
}

// drainBot blocks until the bot goroutine finishes and errCh closes,
// returning any error it sent on the way down.
func drainBot(errCh <-chan error) error {
	return <-errCh
}
