package livequery

import (
	"errors"
	"fmt"
	"strings"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
)

var errFeedClosed = errors.New("change feed closed")

// DraftResolutionError reports a failed batched draft lookup.
type DraftResolutionError struct {
	CandidateIDs []domdoc.ID
	Cause        error
}

func (e *DraftResolutionError) Error() string {
	return fmt.Sprintf("problems fetching docs [%s]: %v",
		strings.Join(domdoc.Strings(e.CandidateIDs), ", "), e.Cause)
}

func (e *DraftResolutionError) Unwrap() error { return e.Cause }

// QueryExecutionError reports a failed primary query fetch.
type QueryExecutionError struct {
	Query  string
	Params query.Params
	Cause  error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query failed %s and %s: %v", e.Query, e.Params.String(), e.Cause)
}

func (e *QueryExecutionError) Unwrap() error { return e.Cause }

// FeedError ends a subscription: the change feed connection failed.
type FeedError struct {
	Cause error
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("change feed failed: %v", e.Cause)
}

func (e *FeedError) Unwrap() error { return e.Cause }

// cycleError attributes a cycle failure. A DraftResolutionError is already
// specific and is returned as is.
func cycleError(spec query.Spec, err error) error {
	var dre *DraftResolutionError
	if errors.As(err, &dre) {
		return dre
	}
	return &QueryExecutionError{Query: spec.Query, Params: spec.Params, Cause: err}
}

// IsTerminal reports whether err ended the subscription.
func IsTerminal(err error) bool {
	var fe *FeedError
	return errors.As(err, &fe)
}
