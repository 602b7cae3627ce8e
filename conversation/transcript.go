// Package conversation manages the chat-mentor turn protocol: a linear,
// append-only transcript where at most one assistant turn is pending at a
// time. Failures never interrupt the conversation; they degrade into a
// substitute assistant entry.
package conversation

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID      string
	Role    Role
	Content string
}

// FallbackReply substitutes for an assistant turn whose request failed.
const FallbackReply = "I'm having trouble connecting to the brain right now. Please try again."

// Mentor is the slice of the service client the transcript needs.
type Mentor interface {
	SendMessage(ctx context.Context, message string) (string, error)
}

// Transcript grows monotonically for the lifetime of the mounted
// conversation view; it is never truncated and not persisted across runs.
type Transcript struct {
	mu       sync.Mutex
	mentor   Mentor
	messages []Message
	pending  bool
	closed   bool
	inflight sync.WaitGroup

	onReply func(message Message)
}

type Option func(*Transcript)

// WithOpening seeds the transcript with an assistant greeting.
func WithOpening(content string) Option {
	return func(t *Transcript) {
		t.messages = append(t.messages, Message{
			ID:      uuid.New().String(),
			Role:    RoleAssistant,
			Content: content,
		})
	}
}

// WithReplyListener is invoked on the turn goroutine whenever an assistant
// message (real or fallback) lands.
func WithReplyListener(fn func(message Message)) Option {
	return func(t *Transcript) {
		t.onReply = fn
	}
}

func NewTranscript(mentor Mentor, options ...Option) *Transcript {
	transcript := &Transcript{mentor: mentor}
	for _, option := range options {
		option(transcript)
	}
	return transcript
}

// Messages returns a copy of the transcript so far.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]Message(nil), t.messages...)
}

// Pending reports whether an assistant turn is still awaited.
func (t *Transcript) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.pending
}

// Send starts a turn: the user message is appended synchronously and the
// mentor request runs in the background. It reports whether a turn actually
// started; blank input or an already-pending turn makes it a no-op.
func (t *Transcript) Send(ctx context.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	t.mu.Lock()
	if t.pending || t.closed {
		t.mu.Unlock()
		return false
	}
	t.pending = true
	t.messages = append(t.messages, Message{
		ID:      uuid.New().String(),
		Role:    RoleUser,
		Content: text,
	})
	t.mu.Unlock()

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		t.completeTurn(ctx, text)
	}()

	return true
}

func (t *Transcript) completeTurn(ctx context.Context, text string) {
	content, err := t.mentor.SendMessage(ctx, text)
	if err != nil {
		slog.Warn("mentor request failed, substituting fallback reply", "error", err)
		content = FallbackReply
	}

	reply := Message{
		ID:      uuid.New().String(),
		Role:    RoleAssistant,
		Content: content,
	}

	t.mu.Lock()
	t.pending = false
	if t.closed {
		// The view unmounted mid-turn; drop the reply silently.
		t.mu.Unlock()
		return
	}
	t.messages = append(t.messages, reply)
	t.mu.Unlock()

	if t.onReply != nil {
		t.onReply(reply)
	}
}

// Close marks the transcript unmounted; replies that land afterwards are
// dropped instead of appended.
func (t *Transcript) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

// Wait blocks until any in-flight turn has settled.
func (t *Transcript) Wait() {
	t.inflight.Wait()
}
