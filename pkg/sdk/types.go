package doclist

// FieldType is the search type of an indexed document field.
type FieldType string

// Field type constants.
const (
	FieldTag     FieldType = "tag"
	FieldText    FieldType = "text"
	FieldNumeric FieldType = "numeric"
)

// Document is a schemaless document. Fields always carries "_id".
type Document struct {
	ID     string
	Fields map[string]any
}

// Query describes a live query.
// Text is a search query; $name placeholders are bound from Params.
// APIVersion pins the query dialect; empty means the client default.
type Query struct {
	Text       string
	Params     map[string]any
	APIVersion string
}

// Snapshot is one delivery of a live query: either the complete current
// result set, or the error that prevented computing it.
type Snapshot struct {
	Seq       uint64
	Documents []Document
	Err       error
}
