package livequery

import (
	"context"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
)

// DraftLookupQuery fetches every document whose id is in $ids.
const DraftLookupQuery = "@_id:{$ids}"

// DraftLookupParam names the candidate id list in DraftLookupQuery.
const DraftLookupParam = "ids"

// resolve runs one fetch-and-resolve cycle.
func resolve(ctx context.Context, client Client, spec query.Spec) ([]domdoc.Document, error) {
	raw, err := client.Fetch(ctx, spec.Query, spec.Params)
	if err != nil {
		return nil, cycleError(spec, err)
	}

	docs, err := resolveDrafts(ctx, client, raw)
	if err != nil {
		return nil, cycleError(spec, err)
	}
	return docs, nil
}

// resolveDrafts substitutes drafts for published documents using a single
// batched lookup. Nothing is looked up when raw holds no published documents.
func resolveDrafts(ctx context.Context, client Client, raw []domdoc.Document) ([]domdoc.Document, error) {
	candidates := domdoc.DraftCandidates(raw)
	if len(candidates) == 0 {
		return domdoc.ResolveDrafts(raw, nil), nil
	}

	drafts, err := client.Fetch(ctx, DraftLookupQuery, query.Params{DraftLookupParam: candidates})
	if err != nil {
		return nil, &DraftResolutionError{CandidateIDs: candidates, Cause: err}
	}
	return domdoc.ResolveDrafts(raw, drafts), nil
}
