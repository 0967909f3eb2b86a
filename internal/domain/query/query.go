// Package query holds the value types exchanged between the live query core
// and a document store client: parameters, listen options, feed events and
// the signals derived from them.
package query

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain"
)

// DefaultAPIVersion is used when a subscription does not pin a version.
const DefaultAPIVersion = "2"

// Params maps query parameter names to values. Values are used verbatim.
type Params map[string]any

// String renders params as JSON for diagnostics.
func (p Params) String() string {
	if len(p) == 0 {
		return "{}"
	}
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(p)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(p))
	}
	return string(b)
}

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// ClientConfig pins client behavior for a subscription.
type ClientConfig struct {
	APIVersion string
}

// Spec identifies a live query: immutable for the lifetime of a subscription.
type Spec struct {
	Query      string
	Params     Params
	APIVersion string
}

// Validate checks the query and fills the default API version.
func (s *Spec) Validate() error {
	if strings.TrimSpace(s.Query) == "" {
		return fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if s.APIVersion == "" {
		s.APIVersion = DefaultAPIVersion
	}
	return nil
}
