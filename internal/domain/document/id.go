package document

import "strings"

// DraftPrefix marks the identifier of an unpublished draft.
const DraftPrefix = "drafts."

// ID is a document identifier. A draft shares logical identity with the
// published document whose id it carries after DraftPrefix.
type ID string

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// IsDraft reports whether id denotes a draft.
func (id ID) IsDraft() bool { return strings.HasPrefix(string(id), DraftPrefix) }

// Draft returns the draft identifier of a published id.
// ok is false when id is already a draft; drafts of drafts do not exist.
func (id ID) Draft() (draft ID, ok bool) {
	if id.IsDraft() {
		return "", false
	}
	return ID(DraftPrefix + string(id)), true
}

// Published returns the published counterpart of id (id itself when not a draft).
func (id ID) Published() ID {
	return ID(strings.TrimPrefix(string(id), DraftPrefix))
}

// Strings converts ids to raw strings.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
