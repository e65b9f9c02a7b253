package workflow

// EventType tags one entry of the job event stream.
type EventType string

const (
	// EventProgress carries a unified whole-job percentage.
	EventProgress EventType = "progress"
	// EventStatus carries a short human-readable phase description.
	EventStatus EventType = "status"
	// EventDebug carries one raw external-tool output line.
	EventDebug EventType = "debug"
	// EventDone carries the terminal result and closes the stream.
	EventDone EventType = "done"
)

// Event is one entry of the worker-to-controller stream. Percent is set for
// Progress, Message for Status, Tool and Message for Debug, Result for Done.
type Event struct {
	Type    EventType
	JobID   string
	Percent float64
	Message string
	Tool    string
	Result  *Result
}

// Result is the single terminal outcome of a job. A failed job leaves no
// guarantee about the output path.
type Result struct {
	OK         bool
	Message    string
	OutputPath string
}
