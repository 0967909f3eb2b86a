package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// IndexFieldType enumerates supported FT index field types.
type IndexFieldType int

const (
	// IndexFieldNumeric is a numeric field.
	IndexFieldNumeric IndexFieldType = iota
	// IndexFieldTag is a tag field.
	IndexFieldTag
	// IndexFieldText is a text field.
	IndexFieldText
)

// String returns the FT.CREATE keyword for t.
func (t IndexFieldType) String() string {
	switch t {
	case IndexFieldNumeric:
		return "NUMERIC"
	case IndexFieldTag:
		return "TAG"
	case IndexFieldText:
		return "TEXT"
	default:
		return "IndexFieldType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseIndexFieldType maps a config name (tag, text, numeric) to a field type.
func ParseIndexFieldType(s string) (IndexFieldType, error) {
	switch s {
	case "tag":
		return IndexFieldTag, nil
	case "text":
		return IndexFieldText, nil
	case "numeric":
		return IndexFieldNumeric, nil
	default:
		return 0, errors.New("unknown index field type " + strconv.Quote(s))
	}
}

// IndexField describes one indexed JSON path.
type IndexField struct {
	Name  string // JSON path, e.g. $.title
	Alias string // name used in queries, e.g. @title
	Type  IndexFieldType

	// TAG options
	TagSeparator     string
	TagCaseSensitive bool
}

// IndexDefinition is an FT index over JSON documents stored under Prefixes.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if !strings.HasPrefix(f.Name, "$.") {
			return fmt.Errorf("field %d: JSON path must start with \"$.\", got %q", i, f.Name)
		}
		// Queries cannot address a JSON path directly, only its alias.
		if f.Alias == "" {
			return fmt.Errorf("field %d: alias is required for %s", i, f.Name)
		}
		if seen[f.Alias] {
			return errors.New("duplicate field name: " + f.Alias)
		}
		seen[f.Alias] = true
	}

	return nil
}
// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
