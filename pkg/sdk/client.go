package doclist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/db"
	dbRedis "github.com/PaulPCIO/dashboard-widget-document-list/internal/db/redis"
	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
	documentrepo "github.com/PaulPCIO/dashboard-widget-document-list/internal/repository/document"
	documentuc "github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/document"
	healthuc "github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/health"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/livequery"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "doclist:"
)

// Internal interfaces, swapped out in tests.
type documentUseCase interface {
	Put(ctx context.Context, id string, fields map[string]any) (domdoc.Document, bool, error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (domdoc.Document, error)
}

type liveUseCase interface {
	Subscribe(ctx context.Context, spec query.Spec) (<-chan livequery.Update, error)
}

// storeCloser is the part of the store the client owns directly.
type storeCloser interface {
	Ping(ctx context.Context) error
	Close()
}

// Client is the doclist SDK entry point.
type Client struct {
	store      storeCloser
	docSvc     documentUseCase
	liveSvc    liveUseCase
	healthSvc  healthUseCase
	apiVersion string
	obs        *observer
}

// New creates a Client, connects to Redis and makes sure the search index
// exists. The provided context is used for the readiness check and index setup.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("doclist: database address required (use WithRedis or WithCluster)")
	}
	if !db.IsValidIdentifier(cfg.keyPrefix) {
		return nil, fmt.Errorf("doclist: invalid key prefix %q", cfg.keyPrefix)
	}
	fields, err := cfg.dbIndexFields()
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.addrs,
		Username:   cfg.username,
		Password:   cfg.password,
		DB:         cfg.db,
		ClientName: "doclist-sdk",
	})
	if err != nil {
		return nil, fmt.Errorf("doclist: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("doclist: database not ready: %w", err)
	}

	repo := documentrepo.New(store, documentrepo.Config{
		KeyPrefix:   cfg.keyPrefix,
		MaxResults:  cfg.maxResults,
		IndexFields: fields,
	})
	if err := repo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("doclist: ensure index: %w", err)
	}

	return wireClient(store, repo, cfg, obs), nil
}

func wireClient(store *dbRedis.Store, repo *documentrepo.Repo, cfg *clientConfig, obs *observer) *Client {
	live := livequery.New(repo)
	if cfg.settleSet {
		live = live.WithSettleInterval(cfg.settleInterval)
	}

	return &Client{
		store:      store,
		docSvc:     documentuc.New(repo),
		liveSvc:    live,
		healthSvc:  healthuc.New(store, repo),
		apiVersion: cfg.apiVersion,
		obs:        obs,
	}
}

func (c *clientConfig) dbIndexFields() ([]db.IndexField, error) {
	out := make([]db.IndexField, 0, len(c.indexFields))
	for _, f := range c.indexFields {
		t, err := db.ParseIndexFieldType(string(f.typ))
		if err != nil {
			return nil, fmt.Errorf("doclist: index field %q: %w", f.alias, err)
		}
		if !db.IsValidIdentifier(f.alias) || f.alias == domdoc.FieldID || f.alias == "_type" {
			return nil, fmt.Errorf("doclist: invalid index field alias %q", f.alias)
		}
		if !strings.HasPrefix(f.path, "$.") {
			return nil, fmt.Errorf("doclist: index field %q: path must start with \"$.\"", f.alias)
		}
		out = append(out, db.IndexField{Name: f.path, Alias: f.alias, Type: t})
	}
	return out, nil
}

// Close releases all resources. Open subscriptions end with a FeedError.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Documents returns the document write service.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{svc: c.docSvc, obs: c.obs}
}
