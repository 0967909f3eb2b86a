package livequery

import (
	"context"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
)

// Client is the document store a subscription listens to and fetches from.
type Client interface {
	Listen(ctx context.Context, q string, params query.Params, opts query.ListenOptions, fn func(query.Event)) error
	Fetch(ctx context.Context, q string, params query.Params) ([]domdoc.Document, error)
}

// pin returns client pinned to apiVersion when it supports versioning,
// otherwise client unchanged.
func pin(client Client, apiVersion string) Client {
	if c, ok := client.(query.Configurable); ok {
		return c.WithConfig(query.ClientConfig{APIVersion: apiVersion})
	}
	return client
}
