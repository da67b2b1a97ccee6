// internal/domain/installation/status.go
package installation

// Status is the lifecycle state of a scheduled installation job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var transitions = map[Status]map[Status]bool{
	StatusPending:    {StatusInProgress: true, StatusFailed: true},
	StatusInProgress: {StatusCompleted: true, StatusFailed: true},
	StatusCompleted:  {},
	StatusFailed:     {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

func CanTransition(from, to Status) bool {
	next, ok := transitions[from]
	return ok && next[to]
}
