package db

import "strings"

// SearchQuery is the input for a raw FT.SEARCH query.
type SearchQuery struct {
	IndexName    string
	Query        string
	Params       map[string]string // sent as PARAMS; requires Dialect >= 2
	Dialect      int               // 0 leaves the server default
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)

// EscapeTag escapes a value for use inside a TAG filter (@field:{...}).
func EscapeTag(value string) string {
	return tagEscaper.Replace(value)
}

// TagAlternation renders values as an escaped TAG alternation: a | b | c.
func TagAlternation(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = EscapeTag(v)
	}
	return strings.Join(escaped, " | ")
}
