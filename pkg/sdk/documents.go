package doclist

import (
	"context"
	"fmt"
	"time"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
)

// DocumentService writes documents. Every write wakes the live queries it
// may affect.
type DocumentService struct {
	svc documentUseCase
	obs *observer
}

// Put creates or replaces a document. Returns true if created.
func (s *DocumentService) Put(ctx context.Context, id string, fields map[string]any) (created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.put", start, err) }()

	_, created, err = s.svc.Put(ctx, id, fields)
	if err != nil {
		return false, fmt.Errorf("put document: %w", err)
	}
	return created, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (_ Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.get", start, err) }()

	d, err := s.svc.Get(ctx, id)
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return fromInternalDocument(d), nil
}

// Delete removes a document by ID.
func (s *DocumentService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Publish replaces the document id with its draft and removes the draft.
func (s *DocumentService) Publish(ctx context.Context, id string) (_ Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.publish", start, err) }()

	d, err := s.svc.Publish(ctx, id)
	if err != nil {
		return Document{}, fmt.Errorf("publish document: %w", err)
	}
	return fromInternalDocument(d), nil
}

func fromInternalDocument(d domdoc.Document) Document {
	return Document{ID: d.ID().String(), Fields: d.Fields()}
}

func fromInternalDocuments(docs []domdoc.Document) []Document {
	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = fromInternalDocument(docs[i])
	}
	return out
}
