package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellebma/template-discord-bot/internal/cooldown"
	"github.com/tellebma/template-discord-bot/internal/errs"
	"github.com/tellebma/template-discord-bot/internal/logger"
)

// fakeResponder records replies instead of talking to Discord.
type fakeResponder struct {
	responses []string
	followups []string
	deferred  bool
	edits     []string
}

func (f *fakeResponder) Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) error {
	f.responses = append(f.responses, content)
	return nil
}

func (f *fakeResponder) Defer(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	f.deferred = true
	return nil
}

func (f *fakeResponder) Followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) error {
	f.followups = append(f.followups, content)
	return nil
}

func (f *fakeResponder) Edit(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	f.edits = append(f.edits, content)
	return nil
}

func testDeps() *Deps {
	return &Deps{
		Cooldowns: cooldown.NewTracker(),
		Errors:    errs.NewHandler(logger.Nop()),
		Log:       logger.Nop(),
	}
}

func testInteraction(commandName string, member *discordgo.Member, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   "g1",
			ChannelID: "c1",
			Member:    member,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    commandName,
				Options: opts,
			},
		},
	}
}

func testMember(permissions int64) *discordgo.Member {
	return &discordgo.Member{
		User:        &discordgo.User{ID: "u1", Username: "tester"},
		Permissions: permissions,
	}
}

func newTestContext(cmd *Command, i *discordgo.InteractionCreate) (*Context, *fakeResponder) {
	ctx := NewContext(nil, i, cmd, logger.Nop())
	fake := &fakeResponder{}
	ctx.responder = fake
	return ctx, fake
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func TestExecuteRunsHandlerWithValidatedOptions(t *testing.T) {
	var received string
	cmd := &Command{
		Name: "echo",
		Options: []*Option{
			{Type: TypeString, Name: "message", Required: true, MaxLength: IntPtr(2000)},
		},
		Handler: func(ctx *Context) error {
			received = ctx.String("message")
			return ctx.Reply(received)
		},
	}

	i := testInteraction("echo", testMember(0), stringOption("message", "hello"))
	ctx, fake := newTestContext(cmd, i)

	cmd.Execute(ctx, testDeps())

	assert.Equal(t, "hello", received)
	require.Len(t, fake.responses, 1)
	assert.Equal(t, "hello", fake.responses[0])
}

func TestExecuteRejectsOversizedOption(t *testing.T) {
	var handlerRan bool
	cmd := &Command{
		Name: "echo",
		Options: []*Option{
			{Type: TypeString, Name: "message", Required: true, MaxLength: IntPtr(2000)},
		},
		Handler: func(ctx *Context) error {
			handlerRan = true
			return nil
		},
	}

	i := testInteraction("echo", testMember(0), stringOption("message", strings.Repeat("a", 2001)))
	ctx, fake := newTestContext(cmd, i)
	deps := testDeps()

	cmd.Execute(ctx, deps)

	assert.False(t, handlerRan)
	require.Len(t, fake.responses, 1)
	assert.Contains(t, fake.responses[0], "message")
	assert.Equal(t, 1, deps.Errors.Counts()[errs.CodeValidationFailed])
}

func TestExecuteRejectsMissingRequiredOption(t *testing.T) {
	cmd := &Command{
		Name: "echo",
		Options: []*Option{
			{Type: TypeString, Name: "message", Required: true},
		},
		Handler: func(ctx *Context) error { return nil },
	}

	i := testInteraction("echo", testMember(0))
	ctx, fake := newTestContext(cmd, i)
	deps := testDeps()

	cmd.Execute(ctx, deps)

	require.Len(t, fake.responses, 1)
	assert.Contains(t, fake.responses[0], "required")
	assert.Equal(t, 1, deps.Errors.Counts()[errs.CodeMissingParameter])
}

func TestExecuteSkipsAbsentOptionalOption(t *testing.T) {
	var hasFlag bool
	cmd := &Command{
		Name: "greet",
		Options: []*Option{
			{Type: TypeString, Name: "suffix"},
		},
		Handler: func(ctx *Context) error {
			hasFlag = ctx.Has("suffix")
			return nil
		},
	}

	i := testInteraction("greet", testMember(0))
	ctx, _ := newTestContext(cmd, i)

	cmd.Execute(ctx, testDeps())

	assert.False(t, hasFlag)
}

func TestExecuteEnforcesPermissions(t *testing.T) {
	cmd := &Command{
		Name:        "purge",
		Permissions: []int64{discordgo.PermissionManageServer},
		Handler:     func(ctx *Context) error { return nil },
	}

	i := testInteraction("purge", testMember(discordgo.PermissionSendMessages))
	ctx, fake := newTestContext(cmd, i)
	deps := testDeps()

	cmd.Execute(ctx, deps)

	require.Len(t, fake.responses, 1)
	assert.Contains(t, fake.responses[0], "Manage Server")
	assert.Equal(t, 1, deps.Errors.Counts()[errs.CodePermissionDenied])

	// Holding the permission passes.
	i = testInteraction("purge", testMember(discordgo.PermissionManageServer|discordgo.PermissionSendMessages))
	ctx, fake = newTestContext(cmd, i)
	cmd.Execute(ctx, deps)
	assert.Empty(t, fake.responses)
}

func TestExecuteEnforcesCooldown(t *testing.T) {
	calls := 0
	cmd := &Command{
		Name:     "ping",
		Cooldown: 3,
		Handler: func(ctx *Context) error {
			calls++
			return nil
		},
	}
	deps := testDeps()

	i := testInteraction("ping", testMember(0))
	ctx, _ := newTestContext(cmd, i)
	cmd.Execute(ctx, deps)
	require.Equal(t, 1, calls)

	ctx, fake := newTestContext(cmd, i)
	cmd.Execute(ctx, deps)
	assert.Equal(t, 1, calls)
	require.Len(t, fake.responses, 1)
	assert.Contains(t, fake.responses[0], "wait")
	assert.Equal(t, 1, deps.Errors.Counts()[errs.CodeCooldownActive])
}

func TestExecuteRecoversHandlerPanic(t *testing.T) {
	cmd := &Command{
		Name: "boom",
		Handler: func(ctx *Context) error {
			panic("nil map write")
		},
	}
	deps := testDeps()

	i := testInteraction("boom", testMember(0))
	ctx, fake := newTestContext(cmd, i)

	assert.NotPanics(t, func() { cmd.Execute(ctx, deps) })

	require.Len(t, fake.responses, 1)
	assert.Equal(t, 1, deps.Errors.Counts()[errs.CodeUnknown])

	recent := deps.Errors.Recent()
	require.Len(t, recent, 1)
	assert.False(t, recent[0].Operational())
}

func TestExecuteRepliesFollowupAfterDefer(t *testing.T) {
	cmd := &Command{
		Name: "slow",
		Handler: func(ctx *Context) error {
			if err := ctx.DeferReply(true); err != nil {
				return err
			}
			return errors.New("downstream failed")
		},
	}
	deps := testDeps()

	i := testInteraction("slow", testMember(0))
	ctx, fake := newTestContext(cmd, i)

	cmd.Execute(ctx, deps)

	assert.True(t, fake.deferred)
	assert.Empty(t, fake.responses)
	require.Len(t, fake.followups, 1)
	assert.Equal(t, 1, deps.Errors.Counts()[errs.CodeCommandFailed])
}

func TestExecuteWrapsForeignHandlerError(t *testing.T) {
	cmd := &Command{
		Name: "flaky",
		Handler: func(ctx *Context) error {
			return errors.New("raw failure")
		},
	}
	deps := testDeps()

	i := testInteraction("flaky", testMember(0))
	ctx, fake := newTestContext(cmd, i)

	cmd.Execute(ctx, deps)

	require.Len(t, fake.responses, 1)
	assert.Contains(t, fake.responses[0], "/flaky")
	assert.NotContains(t, fake.responses[0], "raw failure")
}
