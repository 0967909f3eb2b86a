package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_DocumentIndex(t *testing.T) {
	idx := NewIndex("doclist:docs:idx").
		Prefix("doclist:doc:").
		TagWithOpts("$._id", "_id", "", true).
		Tag("$._type", "_type").
		Text("$.title", "title").
		Numeric("$.rank", "rank").
		MustBuild()

	if len(idx.Fields) != 4 {
		t.Fatalf("fields count = %d, want 4", len(idx.Fields))
	}
	if f := idx.Fields[0]; f.Alias != "_id" || f.Type != IndexFieldTag || !f.TagCaseSensitive {
		t.Errorf("field[0] = %+v, want case-sensitive _id TAG", f)
	}
	if f := idx.Fields[2]; f.Name != "$.title" || f.Type != IndexFieldText {
		t.Errorf("field[2] = %+v, want $.title TEXT", f)
	}
	if f := idx.Fields[3]; f.Type != IndexFieldNumeric {
		t.Errorf("field[3] = %+v, want NUMERIC", f)
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Tag("$.x", "x").
		MustBuild()

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("$.x", "x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("$.x", "x").Build()
			},
			wantErr: "invalid characters",
		},
		{
			name: "missing alias",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Text("$.title", "").Build()
			},
			wantErr: "alias is required",
		},
		{
			name: "not a JSON path",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Tag("title", "title").Build()
			},
			wantErr: "JSON path",
		},
		{
			name: "duplicate alias",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Tag("$.a", "x").Text("$.b", "x").Build()
			},
			wantErr: "duplicate field name: x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		Prefix("doc:").
		TagWithOpts("$._id", "_id", "", true).
		Numeric("$.rank", "rank").
		MustBuild()

	s := idx.String()
	want := "FT.CREATE my-idx ON JSON PREFIX doc: SCHEMA $._id AS _id TAG CASESENSITIVE $.rank AS rank NUMERIC"
	if s != want {
		t.Errorf("String() = %q, want %q", s, want)
	}
}

func TestParseIndexFieldType(t *testing.T) {
	for name, want := range map[string]IndexFieldType{
		"tag":     IndexFieldTag,
		"text":    IndexFieldText,
		"numeric": IndexFieldNumeric,
	} {
		got, err := ParseIndexFieldType(name)
		if err != nil || got != want {
			t.Errorf("ParseIndexFieldType(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseIndexFieldType("vector"); err == nil {
		t.Error("expected error for unsupported type")
	}
}
