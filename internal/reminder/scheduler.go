package reminder

import (
	"encoding/json"
	"errors"

	"github.com/amacleod/pulse/internal/constants"
	"github.com/amacleod/pulse/internal/logger"
	"github.com/amacleod/pulse/internal/models"
	"github.com/amacleod/pulse/internal/storage"
)

// ErrNotAllowed is returned by Apply when the user denies notification
// permission; callers surface it as a transient status, never a hard failure.
var ErrNotAllowed = errors.New("notifications not allowed")

// CancelledUnknown is returned by CancelAll when the platform list call failed
// and a blanket cancel was issued instead: everything was cancelled, but the
// count is unknown.
const CancelledUnknown = -1

// Service manages the stored reminder settings and keeps the platform's
// scheduled-notification set holding at most one schedule for this app.
type Service struct {
	kv       storage.Provider
	platform Platform
}

func NewService(kv storage.Provider, platform Platform) *Service {
	return &Service{
		kv:       kv,
		platform: platform,
	}
}

// LoadSettings reads stored settings, falling back to defaults on absence or
// parse failure.
func (s *Service) LoadSettings() models.ReminderSettings {
	data, ok, err := s.kv.Get(constants.KeyReminderSettings)
	if err != nil {
		logger.Warn("Failed to read reminder settings, using defaults", "error", err)
		return models.DefaultReminderSettings()
	}
	if !ok {
		return models.DefaultReminderSettings()
	}
	return models.DecodeReminderSettings(data)
}

// SaveSettings persists settings as-is. Validation happens at read time.
func (s *Service) SaveSettings(settings models.ReminderSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.kv.Set(constants.KeyReminderSettings, string(data))
}

// HasPermissions reports whether notification permission is currently granted.
// It never prompts.
func (s *Service) HasPermissions() bool {
	granted, err := s.platform.HasPermissions()
	if err != nil {
		logger.Debug("Permission query failed", "error", err)
		return false
	}
	return granted
}

// RequestPermissions returns true immediately if permission is already
// granted, otherwise prompts and returns the resulting decision.
func (s *Service) RequestPermissions() bool {
	if s.HasPermissions() {
		return true
	}
	granted, err := s.platform.RequestPermissions()
	if err != nil {
		logger.Debug("Permission request failed", "error", err)
		return false
	}
	return granted
}

// ScheduleDaily creates a new repeating daily notification at the clamped
// hour/minute. It never checks for existing schedules; callers cancel first.
func (s *Service) ScheduleDaily(hour, minute int) (string, error) {
	return s.platform.Schedule(ScheduleRequest{
		Title:  constants.ReminderTitle,
		Body:   constants.ReminderBody,
		Sound:  true,
		Kind:   constants.ReminderKind,
		Hour:   clamp(hour, 0, 23),
		Minute: clamp(minute, 0, 59),
	})
}

// Cancel cancels one schedule by id, best-effort. A missing id is a no-op.
func (s *Service) Cancel(id string) {
	if id == "" {
		return
	}
	if err := s.platform.Cancel(id); err != nil {
		logger.Debug("Failed to cancel reminder", "id", id, "error", err)
	}
}

// CancelAll cancels every platform schedule matching this app's signature and
// returns the count cancelled. When listing itself fails it falls back to a
// blanket cancel and returns CancelledUnknown.
func (s *Service) CancelAll() int {
	scheduled, err := s.platform.List()
	if err != nil {
		logger.Warn("Failed to list scheduled notifications, cancelling everything", "error", err)
		if err := s.platform.CancelAll(); err != nil {
			logger.Warn("Blanket cancel failed", "error", err)
		}
		return CancelledUnknown
	}

	cancelled := 0
	for _, n := range scheduled {
		if !matches(n) {
			continue
		}
		if err := s.platform.Cancel(n.ID); err != nil {
			logger.Debug("Failed to cancel reminder", "id", n.ID, "error", err)
			continue
		}
		cancelled++
	}
	return cancelled
}

// Reconcile restores the invariant "at most one active platform schedule
// matching this app's signature". It is idempotent and safe to run on every
// start: disabled or permission-less states return unchanged, a missing
// schedule is recreated, a stale cached id is corrected, and duplicate
// schedules are collapsed to one.
func (s *Service) Reconcile(settings models.ReminderSettings) models.ReminderSettings {
	if !settings.Enabled {
		// No schedule should exist, but enforcement happens on explicit
		// disable, not here.
		return settings
	}

	if !s.HasPermissions() {
		// Cannot verify or create schedules without permission; stay quiet for
		// a background reconciliation.
		return settings
	}

	scheduled, err := s.platform.List()
	if err != nil {
		logger.Warn("Reconciliation skipped, cannot list schedules", "error", err)
		return settings
	}

	var matching []Scheduled
	for _, n := range scheduled {
		if matches(n) {
			matching = append(matching, n)
		}
	}

	switch len(matching) {
	case 0:
		id, err := s.ScheduleDaily(settings.Hour, settings.Minute)
		if err != nil {
			logger.Warn("Reconciliation failed to schedule reminder", "error", err)
			return settings
		}
		settings.NotificationID = id
		return settings
	case 1:
		if matching[0].ID != settings.NotificationID {
			settings.NotificationID = matching[0].ID
		}
		return settings
	default:
		for _, n := range matching {
			if err := s.platform.Cancel(n.ID); err != nil {
				logger.Debug("Failed to cancel duplicate reminder", "id", n.ID, "error", err)
			}
		}
		id, err := s.ScheduleDaily(settings.Hour, settings.Minute)
		if err != nil {
			logger.Warn("Reconciliation failed to reschedule reminder", "error", err)
			settings.NotificationID = ""
			return settings
		}
		settings.NotificationID = id
		return settings
	}
}

// Apply is the settings persist flow: cancel all matching schedules
// unconditionally, then either schedule fresh (requesting permission first) or
// persist the disabled state. A permission denial forces the disabled state,
// persists it, and returns ErrNotAllowed. Any other failure leaves the stored
// settings untouched.
func (s *Service) Apply(settings models.ReminderSettings) (models.ReminderSettings, error) {
	s.CancelAll()

	if !settings.Enabled {
		settings.NotificationID = ""
		if err := s.SaveSettings(settings); err != nil {
			return settings, err
		}
		return settings, nil
	}

	if !s.RequestPermissions() {
		settings.Enabled = false
		settings.NotificationID = ""
		if err := s.SaveSettings(settings); err != nil {
			return settings, err
		}
		return settings, ErrNotAllowed
	}

	id, err := s.ScheduleDaily(settings.Hour, settings.Minute)
	if err != nil {
		return settings, err
	}
	settings.NotificationID = id
	if err := s.SaveSettings(settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// matches identifies a platform schedule as belonging to this app, by tag or
// by the exact legacy title/body pair.
func matches(n Scheduled) bool {
	if n.Kind == constants.ReminderKind {
		return true
	}
	return n.Title == constants.ReminderTitle && n.Body == constants.ReminderBody
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
