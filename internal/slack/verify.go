// Package slack holds the inbound request verifier and the outbound
// messaging client for the Slack platform.
package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Header names carried by signed Slack requests.
const (
	SignatureHeader = "X-Slack-Signature"
	TimestampHeader = "X-Slack-Request-Timestamp"
)

// Verification error taxonomy. Both are terminal for the request.
var (
	ErrInvalidSignature = errors.New("invalid request signature")
	ErrStaleTimestamp   = errors.New("stale request timestamp")
)

// Verifier validates that a request genuinely originated from Slack, using
// the shared signing secret and a replay-window check on the timestamp
// header. Verification is pure: no side effects, no I/O.
type Verifier struct {
	secret []byte
	window time.Duration
	now    func() time.Time
}

// NewVerifier creates a Verifier for the given signing secret and replay
// window.
func NewVerifier(secret string, window time.Duration) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		window: window,
		now:    time.Now,
	}
}

// Verify checks the signature over the raw request body and the timestamp
// header. The expected signature is "v0=" + hex(HMAC-SHA256(secret,
// "v0:<timestamp>:<body>")). A missing or unparsable timestamp, or one
// outside the replay window in either direction, fails with
// ErrStaleTimestamp; a signature mismatch fails with ErrInvalidSignature.
func (v *Verifier) Verify(body []byte, timestamp, signature string) error {
	if timestamp == "" {
		return fmt.Errorf("%w: missing %s header", ErrStaleTimestamp, TimestampHeader)
	}
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: unparsable timestamp %q", ErrStaleTimestamp, timestamp)
	}

	age := v.now().Sub(time.Unix(ts, 0))
	if age < 0 {
		age = -age
	}
	if age > v.window {
		return fmt.Errorf("%w: timestamp outside %s replay window", ErrStaleTimestamp, v.window)
	}

	if signature == "" {
		return fmt.Errorf("%w: missing %s header", ErrInvalidSignature, SignatureHeader)
	}

	base := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(base))
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	// hmac.Equal for a constant-time comparison.
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
