package catalog

import "go.uber.org/zap"

// State of a detail-view resolution.
type State int

const (
	StatePending State = iota
	StateFound
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateNotFound:
		return "not_found"
	default:
		return "pending"
	}
}

// Source records where a found property came from.
type Source string

const (
	SourceNone    Source = ""
	SourceCarried Source = "carried"
	SourceCatalog Source = "catalog"
)

// Resolution is the outcome of resolving a detail view. The zero value is
// pending.
type Resolution struct {
	state    State
	source   Source
	property Property
}

func (r Resolution) State() State   { return r.state }
func (r Resolution) Source() Source { return r.source }
func (r Resolution) Found() bool    { return r.state == StateFound }

// Property returns the resolved listing; ok is false unless found.
func (r Resolution) Property() (Property, bool) {
	if r.state != StateFound {
		return Property{}, false
	}
	return r.property, true
}

// Resolve prefers the record carried by navigation and otherwise looks the id
// up. A carried record is returned as-is even when the id matches nothing.
func Resolve(requestedID string, carried *Property, lookup Lookup) Resolution {
	if carried != nil {
		return Resolution{state: StateFound, source: SourceCarried, property: *carried}
	}
	if lookup != nil {
		if p, ok := lookup.Find(requestedID); ok {
			return Resolution{state: StateFound, source: SourceCatalog, property: p}
		}
	}
	return Resolution{state: StateNotFound}
}

// Resolver pins the resolution of one detail view. It is computed once, when
// the view is entered, and never refreshed.
type Resolver struct {
	requestedID string
	resolution  Resolution
}

func NewResolver(requestedID string, carried *Property, lookup Lookup, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	res := Resolve(requestedID, carried, lookup)
	log.Debug("property resolved",
		zap.String("requested_id", requestedID),
		zap.Stringer("state", res.State()),
		zap.String("source", string(res.Source())))
	return &Resolver{requestedID: requestedID, resolution: res}
}

func (r *Resolver) RequestedID() string    { return r.requestedID }
func (r *Resolver) Resolution() Resolution { return r.resolution }
