package doclist

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type indexField struct {
	path  string
	alias string
	typ   FieldType
}

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	keyPrefix      string
	maxResults     int
	apiVersion     string
	settleInterval time.Duration
	settleSet      bool
	indexFields    []indexField

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCluster connects to several Redis nodes.
func WithCluster(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
	})
}

// WithCredentials sets the ACL user and password.
func WithCredentials(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithDB selects the logical database. Standalone servers only.
func WithDB(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = n
	})
}

// WithKeyPrefix namespaces every key, index and channel. Default: "doclist:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithMaxResults caps the documents fetched per query. Default: 1000.
func WithMaxResults(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxResults = n
	})
}

// WithAPIVersion sets the query dialect used when a Query does not pin one.
// Default: "2".
func WithAPIVersion(v string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiVersion = v
	})
}

// WithSettleInterval sets how long a change waits for further changes before
// the query is re-run. Zero re-runs immediately. Default: 1s.
func WithSettleInterval(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.settleInterval = d
		c.settleSet = true
	})
}

// WithIndexField indexes an extra document field so queries can filter on it.
// path is a JSON path such as "$.title"; alias is the name used in queries.
func WithIndexField(path, alias string, t FieldType) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexFields = append(c.indexFields, indexField{path: path, alias: alias, typ: t})
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
