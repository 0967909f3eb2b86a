package doclist

import (
	"context"
	"errors"
	"testing"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
)

func TestDocumentService_Put(t *testing.T) {
	var gotID string
	c := testClient(&mockDocumentUC{
		putFn: func(_ context.Context, id string, fields map[string]any) (domdoc.Document, bool, error) {
			gotID = id
			return mustDoc(id, fields), true, nil
		},
	}, nil, nil)

	created, err := c.Documents().Put(context.Background(), "drafts.a", map[string]any{"title": "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || gotID != "drafts.a" {
		t.Errorf("created = %v, id = %q", created, gotID)
	}
}

func TestDocumentService_Get(t *testing.T) {
	c := testClient(&mockDocumentUC{
		getFn: func(_ context.Context, id string) (domdoc.Document, error) {
			return mustDoc(id, map[string]any{"title": "Hello"}), nil
		},
	}, nil, nil)

	doc, err := c.Documents().Get(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != "a" || doc.Fields["title"] != "Hello" || doc.Fields["_id"] != "a" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestDocumentService_ErrorsKeepSentinels(t *testing.T) {
	c := testClient(&mockDocumentUC{
		getFn: func(context.Context, string) (domdoc.Document, error) {
			return domdoc.Document{}, ErrDocumentNotFound
		},
		deleteFn: func(context.Context, string) error {
			return ErrDocumentNotFound
		},
		publishFn: func(context.Context, string) (domdoc.Document, error) {
			return domdoc.Document{}, ErrDraftNotFound
		},
		putFn: func(context.Context, string, map[string]any) (domdoc.Document, bool, error) {
			return domdoc.Document{}, false, ErrInvalidDocument
		},
	}, nil, nil)
	ctx := context.Background()
	docs := c.Documents()

	if _, err := docs.Get(ctx, "a"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("Get err = %v", err)
	}
	if err := docs.Delete(ctx, "a"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("Delete err = %v", err)
	}
	if _, err := docs.Publish(ctx, "a"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("Publish err = %v", err)
	}
	if _, err := docs.Put(ctx, "a", nil); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("Put err = %v", err)
	}
}

func TestDocumentService_Publish(t *testing.T) {
	c := testClient(&mockDocumentUC{
		publishFn: func(_ context.Context, id string) (domdoc.Document, error) {
			return mustDoc(id, map[string]any{"title": "published"}), nil
		},
	}, nil, nil)

	doc, err := c.Documents().Publish(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != "a" || doc.Fields["title"] != "published" {
		t.Errorf("doc = %+v", doc)
	}
}
