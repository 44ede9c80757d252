// Package relay implements the event-ingestion-and-response pipeline:
// verify the inbound webhook, classify the payload, and answer eligible user
// messages with generated text posted back to the originating channel.
package relay

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/haldis/replybot/internal/cache"
	"github.com/haldis/replybot/internal/events"
	"github.com/haldis/replybot/internal/slack"
)

// Generator produces a reply for a single-turn prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options holds the pipeline's injected dependencies.
type Options struct {
	Verifier  *slack.Verifier
	Messenger slack.Messenger
	Generator Generator
	Cache     *cache.ResponseCache

	// SelfID is the bot's own user id, resolved before the first request
	// is accepted.
	SelfID string

	// GenerationTimeout bounds one generate-and-deliver task.
	GenerationTimeout time.Duration

	Logger *slog.Logger
}

// Pipeline handles inbound Slack event requests. Verification and
// classification run synchronously; generation and delivery run in a
// background task so the webhook is acknowledged within the platform's
// response window regardless of backend latency.
type Pipeline struct {
	verifier  *slack.Verifier
	messenger slack.Messenger
	generator Generator
	cache     *cache.ResponseCache
	selfID    string
	timeout   time.Duration
	logger    *slog.Logger

	tasks sync.WaitGroup
}

// New creates a Pipeline from the given options.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.GenerationTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Pipeline{
		verifier:  opts.Verifier,
		messenger: opts.Messenger,
		generator: opts.Generator,
		cache:     opts.Cache,
		selfID:    opts.SelfID,
		timeout:   timeout,
		logger:    logger,
	}
}

// HandleEvent handles POST /events. Every path writes exactly one response:
// 403 on verification failure, 400 on an undecodable body, 200 otherwise.
// A generation or delivery failure never fails the HTTP response; the
// webhook acknowledgment confirms receipt of the event, not completion of
// the reply.
func (p *Pipeline) HandleEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	defer r.Body.Close()

	timestamp := r.Header.Get(slack.TimestampHeader)
	signature := r.Header.Get(slack.SignatureHeader)
	if err := p.verifier.Verify(body, timestamp, signature); err != nil {
		p.logger.Warn("request rejected", "error", err)
		http.Error(w, "invalid request signature", http.StatusForbidden)
		return
	}

	var payload events.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	c := events.Classify(payload, p.selfID)
	switch c.Kind {
	case events.KindHandshake:
		p.logger.Info("handshake", "challenge_len", len(c.Challenge))
		writeJSON(w, http.StatusOK, map[string]string{"challenge": c.Challenge})

	case events.KindIgnored:
		p.logger.Debug("event ignored", "reason", c.Reason)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})

	case events.KindUserMessage:
		p.logger.Info("message received", "channel", c.Channel, "user", c.UserID)
		p.tasks.Add(1)
		go func() {
			defer p.tasks.Done()
			ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
			defer cancel()
			p.respond(ctx, c)
		}()
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})

	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// respond generates (or recalls) the reply for a user message and delivers
// it to the originating channel. Failures are logged, never surfaced to the
// platform: retry-storms on the webhook are worse than a dropped reply.
func (p *Pipeline) respond(ctx context.Context, c events.Classification) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("respond panicked", "channel", c.Channel, "panic", rec)
		}
	}()

	reply, hit, err := p.cache.GetOrCompute(ctx, c.Text, func(ctx context.Context) (string, error) {
		return p.generator.Generate(ctx, c.Text)
	})
	if err != nil {
		p.logger.Error("generation failed", "channel", c.Channel, "user", c.UserID, "error", err)
		return
	}
	if hit {
		p.logger.Info("cache hit", "channel", c.Channel)
	}

	if err := p.messenger.PostMessage(ctx, c.Channel, reply); err != nil {
		p.logger.Error("delivery failed", "channel", c.Channel, "error", err)
		return
	}
	p.logger.Info("reply delivered", "channel", c.Channel, "cached", hit)
}

// Wait blocks until all in-flight generate-and-deliver tasks have finished.
// Called during shutdown after the HTTP server has stopped accepting.
func (p *Pipeline) Wait() {
	p.tasks.Wait()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
