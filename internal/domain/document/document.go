package document

import (
	"fmt"
	"regexp"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// MaxIDLength is the maximum identifier length, draft prefix included.
const MaxIDLength = 256

// FieldID is the reserved body field carrying the document identifier.
const FieldID = "_id"

// Document is the document aggregate (immutable value object).
// Fields holds the full JSON body, the reserved _id field included.
type Document struct {
	id     ID
	fields map[string]any
}

// New validates and creates a Document. The body's _id is overwritten with id.
func New(id string, fields map[string]any) (Document, error) {
	docID, err := ParseID(id)
	if err != nil {
		return Document{}, err
	}
	body := cloneFields(fields)
	if body == nil {
		body = make(map[string]any, 1)
	}
	body[FieldID] = docID.String()
	return Document{id: docID, fields: body}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id string, fields map[string]any) Document {
	return Document{id: ID(id), fields: fields}
}

// ID returns the document identifier.
func (d *Document) ID() ID { return d.id }

// Fields returns the document body.
func (d *Document) Fields() map[string]any { return d.fields }

// Field returns a single body field.
func (d *Document) Field(name string) (any, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// IsDraft reports whether the document is an in-progress draft.
func (d *Document) IsDraft() bool { return d.id.IsDraft() }

// WithID returns a copy of the document stored under another identifier.
func (d *Document) WithID(id ID) Document {
	body := cloneFields(d.fields)
	if body == nil {
		body = make(map[string]any, 1)
	}
	body[FieldID] = id.String()
	return Document{id: id, fields: body}
}

// ParseID validates a raw identifier.
// Accepted: ^[a-zA-Z0-9_.-]+$, 1-256 chars; a draft id needs a non-empty published part.
func ParseID(raw string) (ID, error) {
	if raw == "" {
		return "", fmt.Errorf("document ID is required")
	}
	if len(raw) > MaxIDLength {
		return "", fmt.Errorf("document ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(raw) {
		return "", fmt.Errorf("document ID must be alphanumeric with underscores, dots and hyphens")
	}
	id := ID(raw)
	if id.IsDraft() && id.Published() == "" {
		return "", fmt.Errorf("draft ID %q has no published part", raw)
	}
	return id, nil
}

func cloneFields(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
