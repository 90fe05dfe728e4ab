package models

import (
	"encoding/json"

	"github.com/amacleod/pulse/internal/constants"
)

// ReminderSettings is the stored reminder configuration. NotificationID
// correlates to the platform's single scheduled notification and is present
// only while a schedule is believed active. The platform's own scheduled list
// is the source of truth; this record is a cache that can drift and is
// corrected by reconciliation.
type ReminderSettings struct {
	Enabled        bool   `json:"enabled"`
	Hour           int    `json:"hour"`
	Minute         int    `json:"minute"`
	NotificationID string `json:"notificationId,omitempty"`
}

// DefaultReminderSettings returns the settings used when nothing is stored.
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		Enabled: false,
		Hour:    constants.DefaultReminderHour,
		Minute:  constants.DefaultReminderMinute,
	}
}

// DecodeReminderSettings parses stored JSON, falling back to defaults when the
// payload is absent or unparseable. Numeric fields are truncated to integers
// and clamped into range; read-time validation compensates for the write path
// persisting settings as-is.
func DecodeReminderSettings(data string) ReminderSettings {
	if data == "" {
		return DefaultReminderSettings()
	}

	var aux struct {
		Enabled        *bool    `json:"enabled"`
		Hour           *float64 `json:"hour"`
		Minute         *float64 `json:"minute"`
		NotificationID *string  `json:"notificationId"`
	}
	if err := json.Unmarshal([]byte(data), &aux); err != nil {
		return DefaultReminderSettings()
	}

	settings := DefaultReminderSettings()
	if aux.Enabled != nil {
		settings.Enabled = *aux.Enabled
	}
	if aux.Hour != nil {
		settings.Hour = clampInt(int(*aux.Hour), 0, 23)
	}
	if aux.Minute != nil {
		settings.Minute = clampInt(int(*aux.Minute), 0, 59)
	}
	if aux.NotificationID != nil {
		settings.NotificationID = *aux.NotificationID
	}
	return settings
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
