package doclist

import (
	"context"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
	healthuc "github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/health"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/livequery"
)

// --- documentUseCase mock ---

type mockDocumentUC struct {
	putFn     func(ctx context.Context, id string, fields map[string]any) (domdoc.Document, bool, error)
	getFn     func(ctx context.Context, id string) (domdoc.Document, error)
	deleteFn  func(ctx context.Context, id string) error
	publishFn func(ctx context.Context, id string) (domdoc.Document, error)
}

func (m *mockDocumentUC) Put(ctx context.Context, id string, fields map[string]any) (domdoc.Document, bool, error) {
	return m.putFn(ctx, id, fields)
}

func (m *mockDocumentUC) Get(ctx context.Context, id string) (domdoc.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocumentUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockDocumentUC) Publish(ctx context.Context, id string) (domdoc.Document, error) {
	return m.publishFn(ctx, id)
}

// --- liveUseCase mock ---

type mockLiveUC struct {
	subscribeFn func(ctx context.Context, spec query.Spec) (<-chan livequery.Update, error)
}

func (m *mockLiveUC) Subscribe(ctx context.Context, spec query.Spec) (<-chan livequery.Update, error) {
	return m.subscribeFn(ctx, spec)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(docSvc documentUseCase, liveSvc liveUseCase, healthSvc healthUseCase) *Client {
	return &Client{
		docSvc:     docSvc,
		liveSvc:    liveSvc,
		healthSvc:  healthSvc,
		apiVersion: query.DefaultAPIVersion,
	}
}

func mustDoc(id string, fields map[string]any) domdoc.Document {
	d, err := domdoc.New(id, fields)
	if err != nil {
		panic(err)
	}
	return d
}
