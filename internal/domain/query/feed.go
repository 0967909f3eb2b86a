package query

// EventType is a raw change feed event kind.
type EventType string

const (
	// EventWelcome confirms the subscription is established.
	EventWelcome EventType = "welcome"
	// EventMutation reports a write that may affect the query result.
	EventMutation EventType = "mutation"
)

// Visibility scopes which writes produce mutation events.
type Visibility string

// VisibilityQuery limits events to writes visible to the query.
const VisibilityQuery Visibility = "query"

// ListenOptions configures a change feed subscription.
type ListenOptions struct {
	Events        []EventType
	IncludeResult bool
	Visibility    Visibility
}

// Accepts reports whether events of type t are wanted.
func (o ListenOptions) Accepts(t EventType) bool {
	for _, e := range o.Events {
		if e == t {
			return true
		}
	}
	return false
}

// LiveListenOptions are the fixed options of a live query subscription:
// welcome and mutation events, no inline results, query visibility.
func LiveListenOptions() ListenOptions {
	return ListenOptions{
		Events:        []EventType{EventWelcome, EventMutation},
		IncludeResult: false,
		Visibility:    VisibilityQuery,
	}
}

// Event is a change feed notification. DocumentID is informational only.
type Event struct {
	Type       EventType
	DocumentID string
}

// Signal tells the resolver it is time to re-derive the result set.
type Signal int

const (
	// SignalInitial is the first signal of a subscription.
	SignalInitial Signal = iota
	// SignalChanged follows every later notification.
	SignalChanged
)

func (s Signal) String() string {
	switch s {
	case SignalInitial:
		return "initial"
	case SignalChanged:
		return "changed"
	default:
		return "unknown"
	}
}
