package model

import (
	"context"
	"time"
)

// SessionStore is the persistence contract the turn driver works against.
// Load returns (nil, nil) when no session exists for the thread.
// Implementations must tolerate concurrent calls for distinct threads;
// the driver serializes load-mutate-save per thread id.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, threadID string) (*Session, error)
	Delete(ctx context.Context, threadID string) error
	ListThreads(ctx context.Context) ([]string, error)

	// Cleanup removes sessions idle for longer than maxAge. Stores with
	// native expiry (Redis TTL) may treat this as a no-op.
	Cleanup(ctx context.Context, maxAge time.Duration) error
}
