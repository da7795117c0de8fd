package workflow

type EventKind int

const (
	EventJobCreated EventKind = iota
	EventUploadAccepted
	EventRankingsUpdated
	EventOperationFailed
)

func (k EventKind) String() string {
	switch k {
	case EventJobCreated:
		return "job-created"
	case EventUploadAccepted:
		return "upload-accepted"
	case EventRankingsUpdated:
		return "rankings-updated"
	case EventOperationFailed:
		return "operation-failed"
	default:
		return "unknown"
	}
}

// Event is what the presentation layer is told about finished operations.
// Stale responses never produce one.
type Event struct {
	Kind    EventKind
	JobID   string
	Message string
	Err     error
}

type Notifier interface {
	Notify(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) {
	f(e)
}
