package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellebma/template-discord-bot/internal/logger"
)

type fakeReplier struct {
	acked     bool
	replies   []string
	followups []string
	sendErr   error
}

func (f *fakeReplier) ReplyEphemeral(content string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.replies = append(f.replies, content)
	return nil
}

func (f *fakeReplier) FollowupEphemeral(content string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.followups = append(f.followups, content)
	return nil
}

func (f *fakeReplier) Acknowledged() bool { return f.acked }

func newTestHandler() *Handler {
	return NewHandler(logger.Nop())
}

func TestNormalizeForeignError(t *testing.T) {
	h := newTestHandler()
	raw := errors.New("cannot read property of undefined")

	norm := h.Normalize(raw, nil)

	assert.Equal(t, CodeUnknown, norm.Code())
	assert.Equal(t, SeverityMedium, norm.Severity())
	assert.False(t, norm.Operational())
	assert.False(t, norm.Timestamp().IsZero())
	assert.NotEmpty(t, norm.UserMessage())
	assert.ErrorIs(t, norm, raw)
}

func TestNormalizeKeepsTaxonomyValues(t *testing.T) {
	h := newTestHandler()
	orig := NewCooldown("ping", 2)

	norm := h.Normalize(orig, map[string]any{"user_id": "42"})

	require.Same(t, Error(orig), norm)
	assert.Equal(t, CodeCooldownActive, norm.Code())
	assert.Equal(t, "42", norm.Context()["user_id"])
	// Original constructor context survives the merge.
	assert.Equal(t, "ping", norm.Context()["command"])
}

func TestHandleCountsPerCode(t *testing.T) {
	h := newTestHandler()

	h.Handle(NewCooldown("ping", 1), nil)
	h.Handle(NewCooldown("echo", 3), nil)
	h.Handle(errors.New("boom"), nil)

	counts := h.Counts()
	assert.Equal(t, 2, counts[CodeCooldownActive])
	assert.Equal(t, 1, counts[CodeUnknown])
}

func TestRecentBufferEvictsOldest(t *testing.T) {
	h := newTestHandler()

	for i := 0; i < recentCapacity+5; i++ {
		h.Handle(Newf(CodeInternal, "failure %d", i), nil)
	}

	recent := h.Recent()
	require.Len(t, recent, recentCapacity)
	assert.Contains(t, recent[0].Error(), "failure 5")
	assert.Contains(t, recent[len(recent)-1].Error(), fmt.Sprintf("failure %d", recentCapacity+4))
}

func TestCallbackIsolation(t *testing.T) {
	h := newTestHandler()

	var order []string
	h.RegisterCallback(func(e Error) error {
		order = append(order, "first")
		return errors.New("callback failed")
	})
	h.RegisterCallback(func(e Error) error {
		order = append(order, "second")
		panic("callback panicked")
	})
	h.RegisterCallback(func(e Error) error {
		order = append(order, "third")
		return nil
	})

	handled, callbackOK := h.Handle(New(CodeInternal, "boom"), nil)

	assert.True(t, handled)
	assert.True(t, callbackOK)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestHandleNilError(t *testing.T) {
	h := newTestHandler()
	handled, callbackOK := h.Handle(nil, nil)
	assert.False(t, handled)
	assert.False(t, callbackOK)
}

func TestHandleRequestRepliesEphemeral(t *testing.T) {
	h := newTestHandler()
	rep := &fakeReplier{}

	h.HandleRequest(NewCooldown("ping", 2), rep, RequestMeta{
		UserID: "u1", Command: "ping", ChannelID: "c1", GuildID: "g1",
	})

	require.Len(t, rep.replies, 1)
	assert.Empty(t, rep.followups)
	assert.Contains(t, rep.replies[0], "2 more second(s)")

	recent := h.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "u1", recent[0].Context()["user_id"])
	assert.Equal(t, "g1", recent[0].Context()["guild_id"])
}

func TestHandleRequestUsesFollowupWhenAcknowledged(t *testing.T) {
	h := newTestHandler()
	rep := &fakeReplier{acked: true}

	h.HandleRequest(NewCommand("ping", errors.New("boom")), rep, RequestMeta{Command: "ping"})

	assert.Empty(t, rep.replies)
	require.Len(t, rep.followups, 1)
}

func TestHandleRequestSendFailureDoesNotPanic(t *testing.T) {
	h := newTestHandler()
	rep := &fakeReplier{sendErr: errors.New("connection reset")}

	assert.NotPanics(t, func() {
		h.HandleRequest(New(CodeInternal, "boom"), rep, RequestMeta{Command: "ping"})
	})
	assert.Equal(t, 1, h.Counts()[CodeInternal])
}

func TestIsOperational(t *testing.T) {
	assert.True(t, IsOperational(NewCooldown("ping", 1)))
	assert.False(t, IsOperational(errors.New("raw failure")))

	defect := New(CodeUnknown, "defect")
	defect.operational = false
	assert.False(t, IsOperational(defect))
}

func TestReset(t *testing.T) {
	h := newTestHandler()
	h.RegisterCallback(func(Error) error { return nil })
	h.Handle(New(CodeInternal, "boom"), nil)

	h.Reset()

	assert.Empty(t, h.Counts())
	assert.Empty(t, h.Recent())
}
