package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type Store interface {
	Pinger
	JSONStore
	IndexManager
	Searcher
	PubSub
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JSONStore provides JSON document operations.
type JSONStore interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher runs FT.SEARCH queries.
type Searcher interface {
	Search(ctx context.Context, q *SearchQuery) (*SearchResult, error)
}

// PubSub publishes to and listens on a notification channel.
type PubSub interface {
	Publish(ctx context.Context, channel string, message []byte) error
	// Subscribe blocks until ctx is done (returns nil) or the connection fails.
	// OnSubscribed fires once the server confirms the subscription.
	Subscribe(ctx context.Context, channel string, h SubscriptionHandler) error
}

// SubscriptionHandler receives subscription lifecycle and message callbacks.
// Callbacks run on the connection's reader and must not block for long.
type SubscriptionHandler struct {
	OnSubscribed func()
	OnMessage    func(message []byte)
}
