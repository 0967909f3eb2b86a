package doclist

import (
	"context"
	"fmt"
	"time"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
)

// Live subscribes to q. The first snapshot arrives as soon as the query runs;
// later ones follow document changes. The channel closes when ctx is done or
// after a snapshot whose Err is a *FeedError.
func (c *Client) Live(ctx context.Context, q Query) (_ <-chan Snapshot, err error) {
	start := time.Now()
	defer func() { c.obs.observe("live.subscribe", start, err) }()

	spec := query.Spec{
		Query:      q.Text,
		Params:     query.Params(q.Params),
		APIVersion: q.APIVersion,
	}
	if spec.APIVersion == "" {
		spec.APIVersion = c.apiVersion
	}

	updates, err := c.liveSvc.Subscribe(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan Snapshot)
	go func() {
		defer close(out)
		for u := range updates {
			s := Snapshot{Seq: u.Seq, Err: u.Err}
			if u.Err == nil {
				s.Documents = fromInternalDocuments(u.Documents)
			}
			c.obs.observeSnapshot(s)
			select {
			case out <- s:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
