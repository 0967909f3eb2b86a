package document

import (
	"reflect"
	"testing"
)

func doc(id string) Document {
	return Reconstruct(id, map[string]any{FieldID: id})
}

func ids(docs []Document) []ID {
	out := make([]ID, len(docs))
	for i := range docs {
		out[i] = docs[i].ID()
	}
	return out
}

func TestDraftCandidates(t *testing.T) {
	raw := []Document{doc("a"), doc("drafts.b"), doc("c"), doc("a")}

	got := DraftCandidates(raw)
	want := []ID{"drafts.a", "drafts.c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DraftCandidates() = %v, want %v", got, want)
	}
}

func TestDraftCandidates_OnlyDrafts(t *testing.T) {
	got := DraftCandidates([]Document{doc("drafts.a"), doc("drafts.b")})
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestResolveDrafts_DraftPrecedence(t *testing.T) {
	draft := Reconstruct("drafts.a", map[string]any{FieldID: "drafts.a", "title": "draft"})
	raw := []Document{doc("a"), doc("b")}

	got := ResolveDrafts(raw, []Document{draft})

	want := []ID{"drafts.a", "b"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("ResolveDrafts() = %v, want %v", ids(got), want)
	}
	if v, _ := got[0].Field("title"); v != "draft" {
		t.Errorf("expected draft body, got %v", got[0].Fields())
	}
}

func TestResolveDrafts_PassThrough(t *testing.T) {
	raw := []Document{doc("drafts.x"), doc("y")}

	got := ResolveDrafts(raw, nil)

	want := []ID{"drafts.x", "y"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("ResolveDrafts() = %v, want %v", ids(got), want)
	}
}

func TestResolveDrafts_DedupStability(t *testing.T) {
	// [A, B, A'] where A' is A's draft: one entry at A's index.
	raw := []Document{doc("a"), doc("b"), doc("drafts.a")}

	got := ResolveDrafts(raw, []Document{doc("drafts.a")})

	want := []ID{"drafts.a", "b"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("ResolveDrafts() = %v, want %v", ids(got), want)
	}
}

func TestResolveDrafts_IgnoresUnrequestedLookupEntries(t *testing.T) {
	raw := []Document{doc("a")}

	got := ResolveDrafts(raw, []Document{doc("drafts.zzz"), doc("a")})

	want := []ID{"a"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("ResolveDrafts() = %v, want %v", ids(got), want)
	}
}

func TestResolveDrafts_Empty(t *testing.T) {
	got := ResolveDrafts(nil, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
}

func TestDedupe_KeepsFirst(t *testing.T) {
	first := Reconstruct("a", map[string]any{"n": 1})
	second := Reconstruct("a", map[string]any{"n": 2})

	got := Dedupe([]Document{first, doc("b"), second})

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if v, _ := got[0].Field("n"); v != 1 {
		t.Errorf("kept %v, want first occurrence", got[0].Fields())
	}
}
