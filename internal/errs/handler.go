package errs

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tellebma/template-discord-bot/internal/logger"
)

// recentCapacity bounds the in-memory history of handled errors.
const recentCapacity = 100

// Callback receives every handled error, in registration order. A callback
// that fails (error or panic) never prevents later callbacks from running.
type Callback func(Error) error

// Replier abstracts the in-flight request so the handler can deliver the
// user-facing message without depending on the transport package. The
// command Context implements it.
type Replier interface {
	// ReplyEphemeral sends the initial private reply.
	ReplyEphemeral(content string) error

	// FollowupEphemeral sends a private follow-up message.
	FollowupEphemeral(content string) error

	// Acknowledged reports whether the request already received a reply or
	// a deferred acknowledgement.
	Acknowledged() bool
}

// RequestMeta carries routing identifiers attached as context when handling
// a request-scoped error.
type RequestMeta struct {
	UserID    string
	Command   string
	ChannelID string
	GuildID   string
}

// Handler normalizes failures into the taxonomy, logs them by severity,
// tracks counts and recent history, and notifies registered callbacks.
// Construct one per process (or per test) and inject it; there is no global.
type Handler struct {
	log *logger.Logger

	mu        sync.Mutex
	callbacks []Callback
	counts    map[Code]int
	recent    []Error
}

// NewHandler returns an empty handler logging through log.
func NewHandler(log *logger.Logger) *Handler {
	return &Handler{
		log:    log,
		counts: make(map[Code]int),
	}
}

// RegisterCallback appends a callback invoked for every handled error.
func (h *Handler) RegisterCallback(cb Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, cb)
}

// Normalize produces a canonical taxonomy value for any failure. Taxonomy
// values keep their code and severity and gain the extra context; foreign
// errors are wrapped as non-operational unknowns with the original as cause.
func (h *Handler) Normalize(err error, extra map[string]any) Error {
	var te Error
	if errors.As(err, &te) {
		if b := baseOf(te); b != nil {
			b.withContext(extra)
		}
		return te
	}

	wrapped := Wrap(err, CodeUnknown, err.Error())
	wrapped.operational = false
	wrapped.withContext(extra)
	return wrapped
}

// baseOf reaches the embedded base of any taxonomy value so Normalize can
// merge context regardless of subtype.
func baseOf(e Error) *base {
	switch v := e.(type) {
	case *GenericError:
		return &v.base
	case *CommandError:
		return &v.base
	case *ValidationError:
		return &v.base
	case *PermissionError:
		return &v.base
	case *CooldownError:
		return &v.base
	case *ConfigError:
		return &v.base
	case *ExternalError:
		return &v.base
	default:
		return nil
	}
}

// Handle normalizes, counts, buffers, logs, and notifies callbacks. It
// returns whether handling completed and whether at least one callback ran
// without failing.
func (h *Handler) Handle(err error, extra map[string]any) (handled, callbackOK bool) {
	if err == nil {
		return false, false
	}
	norm := h.Normalize(err, extra)

	h.mu.Lock()
	h.counts[norm.Code()]++
	h.recent = append(h.recent, norm)
	if len(h.recent) > recentCapacity {
		h.recent = h.recent[len(h.recent)-recentCapacity:]
	}
	callbacks := make([]Callback, len(h.callbacks))
	copy(callbacks, h.callbacks)
	h.mu.Unlock()

	h.logError(norm)

	for _, cb := range callbacks {
		if h.runCallback(cb, norm) {
			callbackOK = true
		}
	}
	return true, callbackOK
}

// runCallback isolates a single callback so a panic or error in one never
// reaches the others.
func (h *Handler) runCallback(cb Callback, e Error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			h.log.Error("error callback panicked", map[string]any{"panic": fmt.Sprint(r)})
		}
	}()
	if err := cb(e); err != nil {
		h.log.Error("error callback failed", map[string]any{"callback_error": err.Error()})
		return false
	}
	return true
}

// HandleRequest handles a failure raised while serving an interaction and
// replies to the requester with the error's user-facing message, privately.
// If the request was already replied or deferred, the message is delivered
// as a follow-up instead. A failure to send the reply is logged, never
// propagated.
func (h *Handler) HandleRequest(err error, rep Replier, meta RequestMeta) {
	if err == nil {
		return
	}
	extra := map[string]any{
		"user_id":    meta.UserID,
		"command":    meta.Command,
		"channel_id": meta.ChannelID,
	}
	if meta.GuildID != "" {
		extra["guild_id"] = meta.GuildID
	}
	norm := h.Normalize(err, extra)
	h.Handle(norm, nil)

	if rep == nil {
		return
	}
	msg := norm.UserMessage()
	var sendErr error
	if rep.Acknowledged() {
		sendErr = rep.FollowupEphemeral(msg)
	} else {
		sendErr = rep.ReplyEphemeral(msg)
	}
	if sendErr != nil {
		h.log.Error("failed to deliver error reply", map[string]any{
			"command": meta.Command,
			"cause":   sendErr.Error(),
		})
	}
}

// logError picks the log level from severity: low logs as a warning, medium
// as an error, high and critical as errors with a severity tag prefix.
func (h *Handler) logError(e Error) {
	fields := LogFields(e)
	switch e.Severity() {
	case SeverityLow:
		h.log.Warn(e.Error(), fields)
	case SeverityHigh, SeverityCritical:
		h.log.Error(fmt.Sprintf("[%s] %s", e.Severity(), e.Error()), fields)
	default:
		h.log.Error(e.Error(), fields)
	}
}

// IsOperational reports whether err belongs to the taxonomy and is marked
// operational. Foreign failure types are programming defects by definition.
func IsOperational(err error) bool {
	var te Error
	if errors.As(err, &te) {
		return te.Operational()
	}
	return false
}

// Counts returns a copy of the per-code occurrence counters.
func (h *Handler) Counts() map[Code]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[Code]int, len(h.counts))
	for k, v := range h.counts {
		out[k] = v
	}
	return out
}

// Recent returns the retained errors, oldest first.
func (h *Handler) Recent() []Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Error, len(h.recent))
	copy(out, h.recent)
	return out
}

// Reset clears callbacks, counters, and history. Used in tests.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = nil
	h.counts = make(map[Code]int)
	h.recent = nil
}
