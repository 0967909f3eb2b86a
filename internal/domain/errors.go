package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDraftNotFound signals a publish request without a draft to publish.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrInvalidDocument signals a malformed document id or body.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidQuery signals a malformed live query request.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnsupportedAPIVersion signals an API version the store cannot serve.
	ErrUnsupportedAPIVersion = errors.New("unsupported api version")
)
