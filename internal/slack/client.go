package slack

import (
	"context"
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"
)

// Messenger delivers replies back to the platform. The relay pipeline depends
// on this interface so tests can substitute a fake.
type Messenger interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// Client wraps the Slack Web API for the two operations the relay needs:
// posting messages and resolving the bot's own identity at startup.
type Client struct {
	api *slackapi.Client
}

// NewClient creates a Client authenticated with the given bot token.
func NewClient(token string) *Client {
	return &Client{api: slackapi.New(token)}
}

// PostMessage sends text to the given channel.
func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channel, slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("posting message to %s: %w", channel, err)
	}
	return nil
}

// ResolveBotIdentity calls auth.test and returns the bot's own user id. The
// relay must not accept requests before this succeeds: without a self id,
// the classifier cannot suppress the bot's own messages and the relay would
// answer itself in a loop.
func (c *Client) ResolveBotIdentity(ctx context.Context) (string, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", fmt.Errorf("slack auth.test: %w", err)
	}
	userID := strings.TrimSpace(resp.UserID)
	if userID == "" {
		return "", fmt.Errorf("slack auth.test returned empty user_id")
	}
	return userID, nil
}
