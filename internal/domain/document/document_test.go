package document

import (
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	doc, err := New("doc-1", map[string]any{"title": "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "doc-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if v, _ := doc.Field("title"); v != "hello" {
		t.Errorf("title = %v", v)
	}
	if v, _ := doc.Field(FieldID); v != "doc-1" {
		t.Errorf("_id = %v, want doc-1", v)
	}
}

func TestNew_OverwritesBodyID(t *testing.T) {
	doc, err := New("doc-1", map[string]any{FieldID: "other"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := doc.Field(FieldID); v != "doc-1" {
		t.Errorf("_id = %v, want doc-1", v)
	}
}

func TestNew_NilFields(t *testing.T) {
	doc, err := New("doc-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Fields()) != 1 {
		t.Errorf("Fields() = %v, want only _id", doc.Fields())
	}
}

func TestNew_ClonesFields(t *testing.T) {
	fields := map[string]any{"k": "v"}
	doc, _ := New("doc-1", fields)

	fields["k"] = "mutated"

	if v, _ := doc.Field("k"); v != "v" {
		t.Error("field mutation leaked into document")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"published", "doc-1", ""},
		{"draft", "drafts.doc-1", ""},
		{"dotted", "a.b.c", ""},
		{"empty", "", "required"},
		{"too long", strings.Repeat("a", MaxIDLength+1), "too long"},
		{"bad chars", "doc 1", "alphanumeric"},
		{"bare prefix", "drafts.", "no published part"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseID(tc.raw)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestID_Draft(t *testing.T) {
	draft, ok := ID("doc-1").Draft()
	if !ok || draft != "drafts.doc-1" {
		t.Errorf("Draft() = %q, %v", draft, ok)
	}

	if _, ok := ID("drafts.doc-1").Draft(); ok {
		t.Error("draft of a draft must not exist")
	}
}

func TestID_Published(t *testing.T) {
	if got := ID("drafts.doc-1").Published(); got != "doc-1" {
		t.Errorf("Published() = %q", got)
	}
	if got := ID("doc-1").Published(); got != "doc-1" {
		t.Errorf("Published() = %q", got)
	}
}

func TestWithID(t *testing.T) {
	doc := Reconstruct("drafts.doc-1", map[string]any{FieldID: "drafts.doc-1", "title": "t"})
	pub := doc.WithID("doc-1")

	if pub.ID() != "doc-1" {
		t.Errorf("ID() = %q", pub.ID())
	}
	if v, _ := pub.Field(FieldID); v != "doc-1" {
		t.Errorf("_id = %v", v)
	}
	if v, _ := doc.Field(FieldID); v != "drafts.doc-1" {
		t.Error("WithID mutated the source document")
	}
}
