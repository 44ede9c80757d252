package events

import "strings"

// Payload is the decoded body of a Slack event callback. It is either a
// url_verification handshake (Challenge set) or an event_callback wrapping
// an inner event.
type Payload struct {
	Type      string     `json:"type"`
	Token     string     `json:"token"`
	Challenge string     `json:"challenge"`
	Event     InnerEvent `json:"event"`
}

// InnerEvent is the inner event of an event_callback payload.
type InnerEvent struct {
	Type    string `json:"type"`
	User    string `json:"user"`
	Text    string `json:"text"`
	Channel string `json:"channel"`
	TS      string `json:"ts"`
	BotID   string `json:"bot_id"`
}

// Kind is the disposition of a classified payload.
type Kind string

const (
	KindHandshake   Kind = "handshake"
	KindIgnored     Kind = "ignored"
	KindUserMessage Kind = "user_message"
)

// Classification is the result of classifying a payload. Exactly one variant
// applies: Handshake carries Challenge, Ignored carries Reason, UserMessage
// carries Channel/UserID/Text.
type Classification struct {
	Kind      Kind
	Challenge string
	Reason    string
	Channel   string
	UserID    string
	Text      string
}

// Classify inspects a decoded payload and decides its disposition. A handshake
// challenge always wins, regardless of any co-present event: the platform
// re-verifies endpoints at will and an unanswered challenge disables the
// webhook. Messages authored by a bot (bot_id set) or by this process itself
// (user == selfID) are never forwarded, to avoid reply loops.
func Classify(p Payload, selfID string) Classification {
	if p.Challenge != "" {
		return Classification{Kind: KindHandshake, Challenge: p.Challenge}
	}

	ev := p.Event
	if ev.Type != "message" {
		return Classification{Kind: KindIgnored, Reason: "not a message event"}
	}
	if ev.BotID != "" {
		return Classification{Kind: KindIgnored, Reason: "bot message"}
	}
	if ev.User == selfID {
		return Classification{Kind: KindIgnored, Reason: "own message"}
	}

	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return Classification{Kind: KindIgnored, Reason: "empty"}
	}

	return Classification{
		Kind:    KindUserMessage,
		Channel: ev.Channel,
		UserID:  ev.User,
		Text:    text,
	}
}
