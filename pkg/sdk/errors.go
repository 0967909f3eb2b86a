package doclist

import (
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/livequery"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDocumentNotFound = domain.ErrDocumentNotFound
	ErrDraftNotFound    = domain.ErrDraftNotFound
	ErrInvalidDocument  = domain.ErrInvalidDocument
	ErrInvalidQuery     = domain.ErrInvalidQuery
)

// Live query failures carried in Snapshot.Err. Use errors.As() to check.
type (
	// DraftResolutionError reports a failed draft lookup; CandidateIDs lists
	// the draft ids that were requested.
	DraftResolutionError = livequery.DraftResolutionError
	// QueryExecutionError reports a failed primary fetch.
	QueryExecutionError = livequery.QueryExecutionError
	// FeedError ends a subscription: the snapshot channel closes after it.
	FeedError = livequery.FeedError
)

// IsTerminal reports whether err ended the subscription.
func IsTerminal(err error) bool { return livequery.IsTerminal(err) }
