// Package livequery keeps a query's draft-resolved result set current by
// re-fetching it whenever the store's change feed reports a write.
package livequery

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/logger"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/metrics"
)

// DefaultSettleInterval is the wait after a change before re-fetching.
const DefaultSettleInterval = time.Second

// Update is one emission of a subscription. Exactly one of Documents and Err
// is meaningful. A cycle error (*DraftResolutionError, *QueryExecutionError)
// leaves the subscription open; a *FeedError is the last update.
type Update struct {
	Seq       uint64
	Documents []domdoc.Document
	Err       error
}

// Service opens live query subscriptions.
type Service struct {
	client Client
	settle time.Duration
}

// New creates a live query service.
func New(client Client) *Service {
	return &Service{client: client, settle: DefaultSettleInterval}
}

// WithSettleInterval sets the delay applied to changed signals.
// Zero disables the delay; negative values are ignored.
func (s *Service) WithSettleInterval(d time.Duration) *Service {
	if d >= 0 {
		s.settle = d
	}
	return s
}

// SettleInterval returns the configured settle interval.
func (s *Service) SettleInterval() time.Duration { return s.settle }

type cycleResult struct {
	gen  uint64
	sig  query.Signal
	docs []domdoc.Document
	err  error
}

// Subscribe starts a subscription for spec. The returned channel is closed
// when ctx is done or after a *FeedError update.
func (s *Service) Subscribe(ctx context.Context, spec query.Spec) (<-chan Update, error) {
	spec.Params = spec.Params.Clone()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	client := pin(s.client, spec.APIVersion)
	out := make(chan Update, 1)
	go s.run(ctx, client, spec, out)
	return out, nil
}

func (s *Service) run(ctx context.Context, client Client, spec query.Spec, out chan<- Update) {
	defer close(out)

	metrics.LiveQueryActiveSubscriptions.Inc()
	defer metrics.LiveQueryActiveSubscriptions.Dec()

	log := logger.FromContext(ctx).With(
		zap.String("query", spec.Query),
		zap.String("api_version", spec.APIVersion),
	)

	log.Info("live query subscription started")
	defer log.Info("live query subscription stopped")

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	f := openFeed(runCtx, client, spec)
	results := make(chan cycleResult)

	var (
		gen         uint64
		seq         uint64
		cancelCycle context.CancelFunc = func() {}
	)
	defer func() { cancelCycle() }()

	emit := func(u Update) bool {
		seq++
		u.Seq = seq
		select {
		case out <- u:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case sig, ok := <-f.Signals():
			if !ok {
				cancelCycle()
				if err := f.Err(); err != nil {
					metrics.LiveQueryFeedFailuresTotal.Inc()
					log.Error("live query feed failed", zap.Error(err))
					emit(Update{Err: err})
				}
				return
			}
			metrics.LiveQuerySignalsTotal.WithLabelValues(sig.String()).Inc()

			// A newer signal abandons whatever cycle is pending.
			cancelCycle()
			gen++
			var cycleCtx context.Context
			cycleCtx, cancelCycle = context.WithCancel(runCtx)
			go s.cycle(cycleCtx, runCtx, gen, sig, client, spec, results, log)

		case r := <-results:
			if r.gen != gen {
				metrics.LiveQueryCyclesTotal.WithLabelValues(metrics.OutcomeAbandoned).Inc()
				continue
			}
			metrics.LiveQueryCyclesTotal.WithLabelValues(outcome(r.err)).Inc()
			if r.err != nil {
				log.Warn("live query cycle failed", zap.Stringer("signal", r.sig), zap.Error(r.err))
				if !emit(Update{Err: r.err}) {
					return
				}
				continue
			}
			log.Debug("live query snapshot", zap.Int("documents", len(r.docs)))
			if !emit(Update{Documents: r.docs}) {
				return
			}
		}
	}
}

// cycle waits out the settle interval for changed signals, then fetches and
// resolves. An abandoned cycle reports nothing.
func (s *Service) cycle(
	ctx, runCtx context.Context, gen uint64, sig query.Signal,
	client Client, spec query.Spec, results chan<- cycleResult, log *zap.Logger,
) {
	abandon := func() {
		metrics.LiveQueryCyclesTotal.WithLabelValues(metrics.OutcomeAbandoned).Inc()
		log.Debug("live query cycle abandoned", zap.Stringer("signal", sig))
	}

	if sig == query.SignalChanged && s.settle > 0 {
		t := time.NewTimer(s.settle)
		defer t.Stop()
		select {
		case <-ctx.Done():
			abandon()
			return
		case <-t.C:
		}
	}

	start := time.Now()
	docs, err := resolve(ctx, client, spec)
	if ctx.Err() != nil {
		abandon()
		return
	}
	metrics.LiveQueryCycleDuration.Observe(time.Since(start).Seconds())

	select {
	case results <- cycleResult{gen: gen, sig: sig, docs: docs, err: err}:
	case <-runCtx.Done():
	}
}

func outcome(err error) string {
	var dre *DraftResolutionError
	switch {
	case err == nil:
		return metrics.OutcomeEmitted
	case errors.As(err, &dre):
		return metrics.OutcomeDraftError
	default:
		return metrics.OutcomeQueryError
	}
}
