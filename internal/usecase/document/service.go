package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain"
	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
)

// Service handles document writes. Every write is announced on the change
// feed by the repository, so live queries pick it up.
type Service struct {
	repo Repository
}

// New creates a document service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Put creates or replaces a document.
// Returns true if the document was created, false if updated.
func (s *Service) Put(ctx context.Context, id string, fields map[string]any) (domdoc.Document, bool, error) {
	doc, err := domdoc.New(id, fields)
	if err != nil {
		return domdoc.Document{}, false, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}

	created, err := s.repo.Put(ctx, &doc)
	if err != nil {
		return domdoc.Document{}, false, fmt.Errorf("put document: %w", err)
	}
	return doc, created, nil
}

// Get retrieves a document by ID.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	docID, err := parseID(id)
	if err != nil {
		return domdoc.Document{}, err
	}

	doc, err := s.repo.Get(ctx, docID)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id string) error {
	docID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, docID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Publish copies the draft of id over the published document and removes
// the draft. id must be a published id.
func (s *Service) Publish(ctx context.Context, id string) (domdoc.Document, error) {
	docID, err := parseID(id)
	if err != nil {
		return domdoc.Document{}, err
	}
	draftID, ok := docID.Draft()
	if !ok {
		return domdoc.Document{}, fmt.Errorf("%q is already a draft id: %w", id, domain.ErrInvalidDocument)
	}

	draft, err := s.repo.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return domdoc.Document{}, fmt.Errorf("publish %s: %w", docID, domain.ErrDraftNotFound)
		}
		return domdoc.Document{}, fmt.Errorf("get draft: %w", err)
	}

	published := draft.WithID(docID)
	if _, err := s.repo.Put(ctx, &published); err != nil {
		return domdoc.Document{}, fmt.Errorf("put published document: %w", err)
	}
	if err := s.repo.Delete(ctx, draftID); err != nil && !errors.Is(err, domain.ErrDocumentNotFound) {
		return domdoc.Document{}, fmt.Errorf("delete draft: %w", err)
	}
	return published, nil
}

func parseID(raw string) (domdoc.ID, error) {
	id, err := domdoc.ParseID(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}
	return id, nil
}
