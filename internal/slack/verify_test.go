package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"
)

const testSecret = "test-signing-secret"

// sign produces a valid Slack signature for the given body and timestamp.
func sign(secret string, body []byte, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func newTestVerifier(now time.Time) *Verifier {
	v := NewVerifier(testSecret, 5*time.Minute)
	v.now = func() time.Time { return now }
	return v
}

func TestVerifyValidRequest(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := newTestVerifier(now)

	body := []byte(`{"challenge":"abc123"}`)
	ts := strconv.FormatInt(now.Unix(), 10)

	if err := v.Verify(body, ts, sign(testSecret, body, ts)); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestVerifyTamperedBody(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := newTestVerifier(now)

	body := []byte(`{"event":{"type":"message","text":"hello"}}`)
	ts := strconv.FormatInt(now.Unix(), 10)
	goodSig := sign(testSecret, body, ts)

	tampered := []byte(`{"event":{"type":"message","text":"evil"}}`)
	err := v.Verify(tampered, ts, goodSig)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature for tampered body, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := newTestVerifier(now)

	body := []byte(`{}`)
	ts := strconv.FormatInt(now.Unix(), 10)

	err := v.Verify(body, ts, sign("other-secret", body, ts))
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyMissingSignature(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := newTestVerifier(now)

	ts := strconv.FormatInt(now.Unix(), 10)
	err := v.Verify([]byte(`{}`), ts, "")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyStaleTimestamp(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := newTestVerifier(now)

	body := []byte(`{}`)
	old := now.Add(-10 * time.Minute)
	ts := strconv.FormatInt(old.Unix(), 10)

	// Signature is valid for the old timestamp; staleness must still reject.
	err := v.Verify(body, ts, sign(testSecret, body, ts))
	if !errors.Is(err, ErrStaleTimestamp) {
		t.Errorf("expected ErrStaleTimestamp, got %v", err)
	}
}

func TestVerifyFutureTimestamp(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := newTestVerifier(now)

	body := []byte(`{}`)
	future := now.Add(10 * time.Minute)
	ts := strconv.FormatInt(future.Unix(), 10)

	err := v.Verify(body, ts, sign(testSecret, body, ts))
	if !errors.Is(err, ErrStaleTimestamp) {
		t.Errorf("expected ErrStaleTimestamp for future skew, got %v", err)
	}
}

func TestVerifyMissingTimestamp(t *testing.T) {
	v := newTestVerifier(time.Unix(1700000000, 0))
	err := v.Verify([]byte(`{}`), "", "v0=whatever")
	if !errors.Is(err, ErrStaleTimestamp) {
		t.Errorf("expected ErrStaleTimestamp, got %v", err)
	}
}

func TestVerifyUnparsableTimestamp(t *testing.T) {
	v := newTestVerifier(time.Unix(1700000000, 0))
	err := v.Verify([]byte(`{}`), "not-a-number", "v0=whatever")
	if !errors.Is(err, ErrStaleTimestamp) {
		t.Errorf("expected ErrStaleTimestamp, got %v", err)
	}
}

func TestVerifyWithinWindowEdges(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := newTestVerifier(now)

	body := []byte(`{}`)
	for _, offset := range []time.Duration{-4 * time.Minute, 4 * time.Minute} {
		ts := strconv.FormatInt(now.Add(offset).Unix(), 10)
		if err := v.Verify(body, ts, sign(testSecret, body, ts)); err != nil {
			t.Errorf("offset %s: expected accept, got %v", offset, err)
		}
	}
}
