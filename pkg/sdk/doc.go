// Package doclist embeds the document list live-query engine in a Go
// process, backed by Redis with the JSON and search modules.
//
// A subscription delivers a fresh, draft-resolved result set every time the
// documents matching its query change:
//
//	client, _ := doclist.New(ctx, doclist.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	snaps, _ := client.Live(ctx, doclist.Query{
//	    Text:   "@_type:{$type}",
//	    Params: map[string]any{"type": "article"},
//	})
//	for s := range snaps {
//	    if s.Err != nil {
//	        log.Print(s.Err) // per-cycle failure, the subscription keeps going
//	        continue
//	    }
//	    render(s.Documents)
//	}
//
// Drafts are documents whose id starts with "drafts.". When both a document
// and its draft match, the draft is delivered in the published document's
// place.
package doclist
