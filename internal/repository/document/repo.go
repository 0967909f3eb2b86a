package document

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/db"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain"
	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/logger"
)

// DefaultMaxResults caps a single fetch when no limit is configured.
const DefaultMaxResults = 1000

// store is the consumer interface for documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	Publish(ctx context.Context, channel string, message []byte) error
	Subscribe(ctx context.Context, channel string, h db.SubscriptionHandler) error
}

// Compile-time checks: Repo is a configurable live query client.
var (
	_ query.Client       = (*Repo)(nil)
	_ query.Configurable = (*Repo)(nil)
)

// Config holds repository settings.
type Config struct {
	KeyPrefix   string
	MaxResults  int
	IndexFields []db.IndexField
}

// Repo stores documents as RedisJSON values, queries them with FT.SEARCH and
// announces writes on a pub/sub channel.
type Repo struct {
	store       store
	keyPrefix   string
	maxResults  int
	indexFields []db.IndexField
	apiVersion  string
}

// New creates a document repository.
func New(s store, cfg Config) *Repo {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Repo{
		store:       s,
		keyPrefix:   cfg.KeyPrefix,
		maxResults:  maxResults,
		indexFields: cfg.IndexFields,
		apiVersion:  query.DefaultAPIVersion,
	}
}

// WithConfig returns a copy of the repository pinned to cfg.APIVersion.
// The version selects the FT.SEARCH query dialect.
func (r *Repo) WithConfig(cfg query.ClientConfig) query.Client {
	c := *r
	if cfg.APIVersion != "" {
		c.apiVersion = cfg.APIVersion
	}
	return &c
}

// APIVersion returns the pinned API version.
func (r *Repo) APIVersion() string { return r.apiVersion }

// EnsureIndex creates the document search index; an existing index is kept.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	b := db.NewIndex(r.indexName()).
		Prefix(r.docKeyPrefix()).
		TagWithOpts("$."+domdoc.FieldID, domdoc.FieldID, "", true).
		Tag("$._type", "_type")
	for _, f := range r.indexFields {
		b.Field(f.Name, f.Alias, f.Type)
	}
	def, err := b.Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// HealthCheck verifies the document search index is present.
func (r *Repo) HealthCheck(ctx context.Context) error {
	ok, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.indexName(), err)
	}
	if !ok {
		return fmt.Errorf("index %s: %w", r.indexName(), db.ErrIndexNotFound)
	}
	return nil
}

// Fetch executes an FT.SEARCH query against the document index.
func (r *Repo) Fetch(ctx context.Context, q string, params query.Params) ([]domdoc.Document, error) {
	dialect, err := parseAPIVersion(r.apiVersion)
	if err != nil {
		return nil, err
	}

	bound, scalars, err := bindParams(q, params)
	if err != nil {
		return nil, fmt.Errorf("bind params: %w", err)
	}

	result, err := r.store.Search(ctx, &db.SearchQuery{
		IndexName:    r.indexName(),
		Query:        bound,
		Params:       scalars,
		Dialect:      dialect,
		Limit:        r.maxResults,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.indexName(), err)
	}

	if result == nil {
		return []domdoc.Document{}, nil
	}
	docs := make([]domdoc.Document, 0, len(result.Entries))
	for _, entry := range result.Entries {
		doc, err := decodeDocument(r.extractDocID(entry.Key), entry.Fields["$"])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", entry.Key, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Listen subscribes to the change channel. A welcome event follows the
// server's subscription confirmation; every published write is a mutation.
// Visibility is prefix-wide: query and params do not filter mutations, since
// a write can move a document out of the result set as well as into it.
func (r *Repo) Listen(
	ctx context.Context, _ string, _ query.Params, opts query.ListenOptions, fn func(query.Event),
) error {
	if opts.IncludeResult {
		return fmt.Errorf("listen: inline results are not supported")
	}
	log := logger.FromContext(ctx)

	err := r.store.Subscribe(ctx, r.changesChannel(), db.SubscriptionHandler{
		OnSubscribed: func() {
			if opts.Accepts(query.EventWelcome) {
				fn(query.Event{Type: query.EventWelcome})
			}
		},
		OnMessage: func(message []byte) {
			if !opts.Accepts(query.EventMutation) {
				return
			}
			m, err := decodeMutation(message)
			if err != nil {
				log.Debug("undecodable change message", zap.ByteString("message", message), zap.Error(err))
			}
			fn(query.Event{Type: query.EventMutation, DocumentID: m.DocumentID})
		},
	})
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.changesChannel(), err)
	}
	return nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id domdoc.ID) (domdoc.Document, error) {
	key := r.docKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domdoc.Document{}, domain.ErrDocumentNotFound
		}
		return domdoc.Document{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return decodeJSONGetResult(id, raw)
}

// Put creates or replaces a document and announces the write.
// Returns true if the document was created. Announcement is at most once:
// a failed PUBLISH after a persisted write is logged, not returned.
func (r *Repo) Put(ctx context.Context, doc *domdoc.Document) (bool, error) {
	key := r.docKey(doc.ID())
	data, err := json.Marshal(doc.Fields())
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}

	transition := transitionUpdate
	if !exists {
		transition = transitionAppear
	}
	r.announce(ctx, doc.ID(), transition)
	return !exists, nil
}

// Delete removes a document and announces the write, at most once like Put.
func (r *Repo) Delete(ctx context.Context, id domdoc.ID) error {
	key := r.docKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	r.announce(ctx, id, transitionDisappear)
	return nil
}

// announce publishes a change message. The write it reports has already
// persisted, so failures are logged and subscribers miss this change.
func (r *Repo) announce(ctx context.Context, id domdoc.ID, transition string) {
	msg, err := encodeMutation(id, transition)
	if err == nil {
		err = r.store.Publish(ctx, r.changesChannel(), msg)
	}
	if err != nil {
		logger.FromContext(ctx).Warn("change announcement failed",
			zap.String("document_id", id.String()),
			zap.String("transition", transition),
			zap.String("channel", r.changesChannel()),
			zap.Error(err),
		)
	}
}

func (r *Repo) docKeyPrefix() string {
	return r.keyPrefix + "doc:"
}

func (r *Repo) docKey(id domdoc.ID) string {
	return r.docKeyPrefix() + id.String()
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "docs:idx"
}

func (r *Repo) changesChannel() string {
	return r.keyPrefix + "changes"
}

func (r *Repo) extractDocID(key string) string {
	return strings.TrimPrefix(key, r.docKeyPrefix())
}

// parseAPIVersion maps an API version to an FT.SEARCH dialect (1-4).
func parseAPIVersion(v string) (int, error) {
	dialect, err := strconv.Atoi(v)
	if err != nil || dialect < 1 || dialect > 4 {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnsupportedAPIVersion, v)
	}
	return dialect, nil
}
