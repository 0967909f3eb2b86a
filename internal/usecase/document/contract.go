package document

import (
	"context"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Put(ctx context.Context, doc *domdoc.Document) (created bool, err error)
	Get(ctx context.Context, id domdoc.ID) (domdoc.Document, error)
	Delete(ctx context.Context, id domdoc.ID) error
}
