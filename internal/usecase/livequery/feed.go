package livequery

import (
	"context"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
)

// feed adapts a store change feed into signals. The first event of a
// subscription is SignalInitial, every later one SignalChanged.
type feed struct {
	signals chan query.Signal
	err     error // set before signals is closed
}

// openFeed starts listening in the background. The signal channel is closed
// when ctx is done (err stays nil) or the feed fails (err is a *FeedError).
func openFeed(ctx context.Context, client Client, spec query.Spec) *feed {
	f := &feed{signals: make(chan query.Signal)}
	go f.listen(ctx, client, spec)
	return f
}

func (f *feed) listen(ctx context.Context, client Client, spec query.Spec) {
	defer close(f.signals)

	first := true
	err := client.Listen(ctx, spec.Query, spec.Params, query.LiveListenOptions(), func(query.Event) {
		sig := query.SignalChanged
		if first {
			sig = query.SignalInitial
			first = false
		}
		select {
		case f.signals <- sig:
		case <-ctx.Done():
		}
	})

	if ctx.Err() != nil {
		return
	}
	if err == nil {
		err = errFeedClosed
	}
	f.err = &FeedError{Cause: err}
}

// Signals returns the signal stream.
func (f *feed) Signals() <-chan query.Signal { return f.signals }

// Err returns the terminal feed error. Valid once Signals is closed.
func (f *feed) Err() error { return f.err }
