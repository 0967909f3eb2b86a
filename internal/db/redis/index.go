package redis

import (
	"context"
	"strconv"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/db"
)

// CreateIndex creates an FT index over JSON documents.
// An index that already exists yields db.ErrIndexExists; its schema is not compared.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(createArgs(def)...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isUnknownIndex(err) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// isUnknownIndex matches the missing-index reply of both RediSearch 2.x
// and the Redis 8 query engine.
func isUnknownIndex(err error) bool {
	return isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index")
}

func createArgs(idx *db.IndexDefinition) []string {
	args := make([]string, 0, 6+len(idx.Prefixes)+5*len(idx.Fields))
	args = append(args, idx.Name, "ON", "JSON")

	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}

	args = append(args, "SCHEMA")
	for i := range idx.Fields {
		args = append(args, fieldArgs(&idx.Fields[i])...)
	}
	return args
}

func fieldArgs(f *db.IndexField) []string {
	args := []string{f.Name, "AS", f.Alias, f.Type.String()}
	if f.Type != db.IndexFieldTag {
		return args
	}
	if f.TagSeparator != "" {
		args = append(args, "SEPARATOR", f.TagSeparator)
	}
	if f.TagCaseSensitive {
		args = append(args, "CASESENSITIVE")
	}
	return args
}
