// internal/domain/payment/status.go
package payment

// Status is the lifecycle state of a payment record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

var transitions = map[Status]map[Status]bool{
	StatusPending:   {StatusCompleted: true, StatusFailed: true},
	StatusCompleted: {StatusRefunded: true},
	StatusFailed:    {},
	StatusRefunded:  {},
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
