package offsync

// Event names for hosts that route notifications by name.
const (
	EventSyncProgress     = "sync-progress"
	EventContentAvailable = "offline-content-available"
)

// CompleteMarker is the CurrentItem of the final progress snapshot of a run.
const CompleteMarker = "Complete"

// SyncProgress is a snapshot of a running sync.
type SyncProgress struct {
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	CurrentItem string `json:"current_item"`
	IsComplete  bool   `json:"is_complete"`
}

// Notifier receives notifications pushed by the sync engine.
// Implementations may be called from any goroutine, but the engine never
// calls them concurrently.
type Notifier interface {
	// Progress is called before each URL is attempted and once at the end of a run.
	Progress(p SyncProgress)

	// ContentReady delivers the full text of a cached document.
	ContentReady(content string)
}

var _ Notifier = NotifierFuncs{}

// NotifierFuncs adapts plain functions to a Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	ProgressFn     func(SyncProgress)
	ContentReadyFn func(string)
}

func (n NotifierFuncs) Progress(p SyncProgress) {
	if n.ProgressFn != nil {
		n.ProgressFn(p)
	}
}

func (n NotifierFuncs) ContentReady(content string) {
	if n.ContentReadyFn != nil {
		n.ContentReadyFn(content)
	}
}
