package livequery

import (
	"context"
	"sync"
	"testing"
	"time"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
)

// --- Mocks ---

type fetchCall struct {
	query  string
	params query.Params
}

// fakeClient is a store whose feed is driven by the test.
type fakeClient struct {
	events  chan query.Event
	feedErr chan error
	fetchFn func(ctx context.Context, q string, params query.Params) ([]domdoc.Document, error)

	mu      sync.Mutex
	fetches []fetchCall
	opts    []query.ListenOptions
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		events:  make(chan query.Event),
		feedErr: make(chan error, 1),
	}
}

func (f *fakeClient) Listen(
	ctx context.Context, _ string, _ query.Params, opts query.ListenOptions, fn func(query.Event),
) error {
	f.mu.Lock()
	f.opts = append(f.opts, opts)
	f.mu.Unlock()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-f.events:
			fn(e)
		case err := <-f.feedErr:
			return err
		}
	}
}

func (f *fakeClient) Fetch(ctx context.Context, q string, params query.Params) ([]domdoc.Document, error) {
	f.mu.Lock()
	f.fetches = append(f.fetches, fetchCall{query: q, params: params})
	f.mu.Unlock()
	if f.fetchFn != nil {
		return f.fetchFn(ctx, q, params)
	}
	return nil, nil
}

func (f *fakeClient) calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fetchCall, len(f.fetches))
	copy(out, f.fetches)
	return out
}

// primaryCalls counts fetches that are not draft lookups.
func (f *fakeClient) primaryCalls() int {
	n := 0
	for _, c := range f.calls() {
		if c.query != DraftLookupQuery {
			n++
		}
	}
	return n
}

// send delivers a feed event, failing the test if nobody listens.
func (f *fakeClient) send(t *testing.T, typ query.EventType) {
	t.Helper()
	select {
	case f.events <- query.Event{Type: typ}:
	case <-time.After(time.Second):
		t.Fatalf("feed did not accept %s event", typ)
	}
}

// versionedClient records the version it was pinned to.
type versionedClient struct {
	*fakeClient
	mu     sync.Mutex
	pinned []string
}

func (v *versionedClient) WithConfig(cfg query.ClientConfig) query.Client {
	v.mu.Lock()
	v.pinned = append(v.pinned, cfg.APIVersion)
	v.mu.Unlock()
	return v.fakeClient
}

// --- Helpers ---

func doc(t *testing.T, id string, fields ...any) domdoc.Document {
	t.Helper()
	body := make(map[string]any)
	for i := 0; i+1 < len(fields); i += 2 {
		body[fields[i].(string)] = fields[i+1]
	}
	d, err := domdoc.New(id, body)
	if err != nil {
		t.Fatalf("new document %q: %v", id, err)
	}
	return d
}

func ids(docs []domdoc.Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].ID().String()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func next(t *testing.T, updates <-chan Update, within time.Duration) Update {
	t.Helper()
	select {
	case u, ok := <-updates:
		if !ok {
			t.Fatal("updates closed unexpectedly")
		}
		return u
	case <-time.After(within):
		t.Fatalf("no update within %s", within)
		return Update{}
	}
}

func expectSilence(t *testing.T, updates <-chan Update, d time.Duration) {
	t.Helper()
	select {
	case u, ok := <-updates:
		if ok {
			t.Fatalf("unexpected update: seq=%d docs=%v err=%v", u.Seq, ids(u.Documents), u.Err)
		}
	case <-time.After(d):
	}
}

func expectClosed(t *testing.T, updates <-chan Update) {
	t.Helper()
	select {
	case u, ok := <-updates:
		if ok {
			t.Fatalf("expected closed channel, got update seq=%d err=%v", u.Seq, u.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("updates not closed")
	}
}

func subscribe(t *testing.T, svc *Service, spec query.Spec) (<-chan Update, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	updates, err := svc.Subscribe(ctx, spec)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	return updates, cancel
}
