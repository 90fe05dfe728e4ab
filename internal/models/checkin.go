package models

import "encoding/json"

// DailyCheckin is one self-assessed record of energy/mood/focus for a calendar
// day. DateKey (YYYY-MM-DD, device-local) is the identity key: the persisted
// collection holds at most one record per DateKey.
type DailyCheckin struct {
	DateKey   string `json:"dateKey"`
	Energy    int    `json:"energy"`
	Mood      int    `json:"mood"`
	Focus     int    `json:"focus"`
	UpdatedAt int64  `json:"updatedAt"` // epoch milliseconds, set on every write
}

// DecodeCheckin decodes a single stored element, requiring all five fields to
// be present with the correct primitive types. Returns false for anything
// malformed so callers can drop the element instead of failing the whole load.
func DecodeCheckin(raw json.RawMessage) (DailyCheckin, bool) {
	var aux struct {
		DateKey   *string `json:"dateKey"`
		Energy    *int    `json:"energy"`
		Mood      *int    `json:"mood"`
		Focus     *int    `json:"focus"`
		UpdatedAt *int64  `json:"updatedAt"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return DailyCheckin{}, false
	}
	if aux.DateKey == nil || aux.Energy == nil || aux.Mood == nil || aux.Focus == nil || aux.UpdatedAt == nil {
		return DailyCheckin{}, false
	}
	return DailyCheckin{
		DateKey:   *aux.DateKey,
		Energy:    *aux.Energy,
		Mood:      *aux.Mood,
		Focus:     *aux.Focus,
		UpdatedAt: *aux.UpdatedAt,
	}, true
}
