package driver

// Status reports how far a file has got.
type Status uint8

const (
	// StatusQueued: файл ждёт свободного воркера
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ProgressEvent describes a state change of one file.
type ProgressEvent struct {
	Path   string
	Status Status
	Cached bool
	Err    error
}

// ProgressFunc receives progress events. ParseDir calls it from worker
// goroutines, so it must be safe for concurrent use.
type ProgressFunc func(ProgressEvent)

func (f ProgressFunc) emit(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
