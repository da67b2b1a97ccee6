// internal/domain/quote/status.go
package quote

// Status is the lifecycle state of a quote request.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusConverted Status = "converted"
	StatusRejected  Status = "rejected"
)

// transitions is the full state graph. Terminal states map to an empty set,
// so any mutation of a converted or rejected quote is refused.
var transitions = map[Status]map[Status]bool{
	StatusNew:       {StatusContacted: true, StatusConverted: true, StatusRejected: true},
	StatusContacted: {StatusConverted: true, StatusRejected: true},
	StatusConverted: {},
	StatusRejected:  {},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether moving from -> to is allowed by the graph.
func CanTransition(from, to Status) bool {
	next, ok := transitions[from]
	return ok && next[to]
}
