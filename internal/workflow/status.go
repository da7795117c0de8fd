package workflow

type OpState int

const (
	OpIdle OpState = iota
	OpInFlight
	OpSucceeded
	OpFailed
)

func (s OpState) String() string {
	switch s {
	case OpInFlight:
		return "in-flight"
	case OpSucceeded:
		return "succeeded"
	case OpFailed:
		return "failed"
	default:
		return "idle"
	}
}

// OpStatus tracks one kind of network operation. Job creation, CV upload and
// ranking fetch each have their own, so one in-flight request never hides
// another.
type OpStatus struct {
	State OpState
	Err   error
}

func (s OpStatus) InFlight() bool {
	return s.State == OpInFlight
}
