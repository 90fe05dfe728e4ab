package reminder

// Scheduled is one notification known to the platform's scheduler.
type Scheduled struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Kind   string `json:"kind,omitempty"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// ScheduleRequest describes a repeating daily notification to create.
type ScheduleRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Sound  bool   `json:"sound"`
	Kind   string `json:"kind"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// Platform is the device's scheduled-notification primitive. Its own list is
// the source of truth for what is scheduled; the stored settings are only a
// cache reconciled against it.
type Platform interface {
	List() ([]Scheduled, error)
	Schedule(req ScheduleRequest) (string, error)
	Cancel(id string) error
	CancelAll() error
	HasPermissions() (bool, error)
	RequestPermissions() (bool, error)
}
