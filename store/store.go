// Package store provides the session-context storage used by the tool layer.
// Tool handlers record cross-tool facts (such as the last looked-up member)
// keyed by session, and later tool calls in the same session can read them.
package store

import (
	"context"
)

// ContextStore is a key-value mapping maintained by the tool layer,
// scoped to a session. Entries are created or overwritten by tool calls
// and never explicitly deleted during a session.
type ContextStore interface {
	// Get returns the value for the key, or "" if not recorded.
	Get(ctx context.Context, sessionID, key string) (string, error)
	// Set records the value for the key.
	Set(ctx context.Context, sessionID, key, value string) error
	// All returns a copy of the recorded entries for the session.
	All(ctx context.Context, sessionID string) (map[string]string, error)
	// Reset removes all entries for the session.
	Reset(ctx context.Context, sessionID string) error
}
