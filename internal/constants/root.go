package constants

const (
	AppName            = "pulse"
	DefaultKeyringUser = "database-connection"
	AgentKeyringUser   = "agent-secret"
	DefaultConfigPath  = "~/.config/pulse/pulse.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Key-value store keys
	KeyCheckins         = "checkin:daily-v1"
	KeyReminderSettings = "checkin:reminder-v1"

	// Reminder notification content. ReminderKind tags schedules created by this
	// app; the exact title/body pair doubles as the match for schedules created
	// before tagging existed.
	ReminderKind  = "checkin:daily-reminder-v1"
	ReminderTitle = "Reminder"
	ReminderBody  = "Time to add today's track."

	// Retention window for check-ins, in calendar days including today
	DefaultRetentionDays = 90

	// Metric bounds, enforced at the UI boundary rather than by the store
	MetricMin = 1
	MetricMax = 10

	// Default reminder settings
	DefaultReminderHour   = 20
	DefaultReminderMinute = 0

	// Agent constants
	AgentLockfileName   = "pulse-agent.lock"
	AgentIdentifier     = "com.pulse.agent"
	AgentExecutableName = "pulse"
)
