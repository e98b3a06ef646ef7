package retry

// State is the execution state of a Task or Handle.
type State int32

const (
	Idle State = iota
	Running
	Succeeded
	Failed
	Cancelled
	// Skipped marks a unit of work that found nothing to do.
	Skipped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s >= Succeeded
}
