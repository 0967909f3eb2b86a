package chi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/logger"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/livequery"
)

// Stream event names.
const (
	eventSnapshot   = "snapshot"
	eventCycleError = "cycle_error"
	eventFeedError  = "feed_error"
)

// Cycle error kinds.
const (
	kindDraftResolution = "draft_resolution"
	kindQueryExecution  = "query_execution"
)

// SnapshotEvent carries one resolved result set.
type SnapshotEvent struct {
	Seq       uint64           `json:"seq"`
	Documents []map[string]any `json:"documents"`
}

// ErrorEvent carries a cycle or feed failure.
type ErrorEvent struct {
	Seq     uint64 `json:"seq"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// LiveQuery handles GET /v1/live as a server-sent event stream.
func (s *Server) LiveQuery(w http.ResponseWriter, r *http.Request) {
	spec, err := s.specFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, CodeStreamingUnsupported, "streaming unsupported")
		return
	}

	subID := uuid.NewString()
	ctx, log := logger.With(r.Context(), zap.String("subscription", subID))

	updates, err := s.live.Subscribe(ctx, spec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	// Streams outlive the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	h.Set("X-Subscription-ID", subID)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepalive := time.NewTicker(s.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := writeUpdate(w, u); err != nil {
				log.Debug("live query stream write failed", zap.Error(err))
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) specFromRequest(r *http.Request) (query.Spec, error) {
	values := r.URL.Query()

	spec := query.Spec{
		Query:      values.Get("query"),
		APIVersion: values.Get("apiVersion"),
	}
	if spec.APIVersion == "" {
		spec.APIVersion = s.apiVersion
	}

	if raw := values.Get("params"); raw != "" {
		var params query.Params
		if err := json.UnmarshalFromString(raw, &params); err != nil {
			return query.Spec{}, fmt.Errorf("params must be a JSON object: %w", err)
		}
		spec.Params = params
	}

	if err := spec.Validate(); err != nil {
		return query.Spec{}, err
	}
	return spec, nil
}

func writeUpdate(w io.Writer, u livequery.Update) error {
	if u.Err == nil {
		docs := make([]map[string]any, len(u.Documents))
		for i := range u.Documents {
			docs[i] = u.Documents[i].Fields()
		}
		return writeEvent(w, eventSnapshot, u.Seq, SnapshotEvent{Seq: u.Seq, Documents: docs})
	}

	if livequery.IsTerminal(u.Err) {
		return writeEvent(w, eventFeedError, u.Seq, ErrorEvent{Seq: u.Seq, Message: u.Err.Error()})
	}

	kind := kindQueryExecution
	var dre *livequery.DraftResolutionError
	if errors.As(u.Err, &dre) {
		kind = kindDraftResolution
	}
	return writeEvent(w, eventCycleError, u.Seq, ErrorEvent{Seq: u.Seq, Kind: kind, Message: u.Err.Error()})
}

func writeEvent(w io.Writer, name string, seq uint64, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", name, err)
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", seq, name, data); err != nil {
		return fmt.Errorf("write %s event: %w", name, err)
	}
	return nil
}
