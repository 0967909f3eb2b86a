package query

import (
	"context"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
)

// Client is a document store that can be listened to and queried.
type Client interface {
	// Listen blocks delivering feed events to fn until ctx is done (nil)
	// or the feed connection fails (the error).
	Listen(ctx context.Context, query string, params Params, opts ListenOptions, fn func(Event)) error
	// Fetch executes query once. No match is an empty slice, not an error.
	Fetch(ctx context.Context, query string, params Params) ([]document.Document, error)
}

// Configurable is implemented by clients that support version pinning.
type Configurable interface {
	WithConfig(cfg ClientConfig) Client
}
