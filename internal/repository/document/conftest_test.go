package document

import (
	"context"
	"testing"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/db"
	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn     func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn     func(ctx context.Context, key string, paths ...string) ([]byte, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	searchFn      func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	publishFn     func(ctx context.Context, channel string, message []byte) error
	subscribeFn   func(ctx context.Context, channel string, h db.SubscriptionHandler) error

	published []publishedMessage
}

type publishedMessage struct {
	channel string
	message mutationMessage
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return true, nil
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) Publish(ctx context.Context, channel string, message []byte) error {
	msg, _ := decodeMutation(message)
	m.published = append(m.published, publishedMessage{channel: channel, message: msg})
	if m.publishFn != nil {
		return m.publishFn(ctx, channel, message)
	}
	return nil
}

func (m *mockStore) Subscribe(ctx context.Context, channel string, h db.SubscriptionHandler) error {
	if m.subscribeFn != nil {
		return m.subscribeFn(ctx, channel, h)
	}
	h.OnSubscribed()
	<-ctx.Done()
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, Config{KeyPrefix: "doclist:"})
	return repo, ms
}

func testDocument(t *testing.T, id string) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New(id, map[string]any{"_type": "article", "title": "Hello"})
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}
