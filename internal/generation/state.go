package generation

import "fmt"

// State tracks one request through the generate/validate cycle. Transitions
// are guarded so a request can never, for example, finalize before it
// validated, or retry more than once.
type State string

// Request states.
const (
	StatePending   State = "pending"
	StateGenerated State = "generated"
	StateValid     State = "valid"
	StateInvalid   State = "invalid"
	StateFinal     State = "final"
)

var allowedTransitions = map[State][]State{
	StatePending:   {StateGenerated},
	StateGenerated: {StateValid, StateInvalid},
	StateValid:     {StateFinal},
	// An invalid attempt may regenerate exactly once or give up.
	StateInvalid: {StateGenerated, StateFinal},
}

type stateMachine struct {
	current State
	retries int
}

func newStateMachine() *stateMachine {
	return &stateMachine{current: StatePending}
}

// maxRetries bounds regeneration: at most one retry per request.
const maxRetries = 1

func (m *stateMachine) transition(to State) error {
	for _, allowed := range allowedTransitions[m.current] {
		if allowed == to {
			if m.current == StateInvalid && to == StateGenerated {
				if m.retries >= maxRetries {
					return fmt.Errorf("retry budget exhausted in state %s", m.current)
				}
				m.retries++
			}
			m.current = to
			return nil
		}
	}
	return fmt.Errorf("invalid state transition %s -> %s", m.current, to)
}
