// Package cache provides the memoizing prompt→reply store that sits in front
// of the generation backend.
package cache

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the value for a prompt that is not cached yet.
type ComputeFunc func(ctx context.Context) (string, error)

// ResponseCache memoizes generated replies by prompt. Keys are the trimmed,
// case-sensitive prompt text. The store is bounded: least-recently-used
// entries are evicted once the configured size is reached. Concurrent misses
// for the same prompt share a single in-flight computation.
type ResponseCache struct {
	entries *lru.Cache[string, string]
	group   singleflight.Group
}

// New creates a ResponseCache holding at most size entries.
func New(size int) (*ResponseCache, error) {
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating response cache: %w", err)
	}
	return &ResponseCache{entries: entries}, nil
}

// GetOrCompute returns the cached reply for prompt, or invokes compute to
// produce it. The hit result reports whether the value came from the cache
// without invoking compute. Failed computations are never stored: a later
// identical prompt retries generation instead of replaying the error.
func (c *ResponseCache) GetOrCompute(ctx context.Context, prompt string, compute ComputeFunc) (value string, hit bool, err error) {
	key := strings.TrimSpace(prompt)

	if v, ok := c.entries.Get(key); ok {
		return v, true, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have settled the key while we waited
		// on the flight group.
		if v, ok := c.entries.Get(key); ok {
			return v, nil
		}
		out, err := compute(ctx)
		if err != nil {
			return "", err
		}
		c.entries.Add(key, out)
		return out, nil
	})
	if err != nil {
		return "", false, err
	}
	return v.(string), false, nil
}

// Len returns the number of cached entries.
func (c *ResponseCache) Len() int {
	return c.entries.Len()
}
