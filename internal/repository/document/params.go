package document

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/db"
	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
)

var paramRef = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// bindParams prepares a query for FT.SEARCH. List values are expanded in
// place as an escaped tag alternation; referenced scalars are returned for
// PARAMS. Unreferenced params are ignored.
func bindParams(q string, params query.Params) (string, map[string]string, error) {
	var (
		scalars map[string]string
		bindErr error
	)

	bound := paramRef.ReplaceAllStringFunc(q, func(ref string) string {
		if bindErr != nil {
			return ref
		}
		name := ref[1:]
		value, ok := params[name]
		if !ok {
			bindErr = fmt.Errorf("param %q is not set", name)
			return ref
		}

		list, isList, err := listValues(value)
		if err != nil {
			bindErr = fmt.Errorf("param %q: %w", name, err)
			return ref
		}
		if isList {
			if len(list) == 0 {
				bindErr = fmt.Errorf("param %q is an empty list", name)
				return ref
			}
			return db.TagAlternation(list)
		}

		s, err := scalarValue(value)
		if err != nil {
			bindErr = fmt.Errorf("param %q: %w", name, err)
			return ref
		}
		if scalars == nil {
			scalars = make(map[string]string)
		}
		scalars[name] = s
		return ref
	})
	if bindErr != nil {
		return "", nil, bindErr
	}
	return bound, scalars, nil
}

// listValues reports whether v is a list param. Every item of a decoded
// JSON list must be a scalar; the query is never run on a partial list.
func listValues(v any) ([]string, bool, error) {
	switch list := v.(type) {
	case []string:
		return list, true, nil
	case []domdoc.ID:
		return domdoc.Strings(list), true, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, err := scalarValue(item)
			if err != nil {
				return nil, true, fmt.Errorf("list item %d: %w", i, err)
			}
			out = append(out, s)
		}
		return out, true, nil
	default:
		return nil, false, nil
	}
}

func scalarValue(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case domdoc.ID:
		return s.String(), nil
	case bool:
		return strconv.FormatBool(s), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}
