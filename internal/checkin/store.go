package checkin

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/amacleod/pulse/internal/constants"
	"github.com/amacleod/pulse/internal/logger"
	"github.com/amacleod/pulse/internal/models"
	"github.com/amacleod/pulse/internal/storage"
)

// Store persists one check-in per calendar day under a single key-value entry.
// It holds no cache between calls: every operation re-reads and re-writes the
// full collection. Volume is bounded by the retention purge, so this keeps
// each mutation down to one atomic key write.
type Store struct {
	kv  storage.Provider
	now func() time.Time
}

func NewStore(kv storage.Provider) *Store {
	return &Store{
		kv:  kv,
		now: time.Now,
	}
}

// UpsertInput carries the three self-assessed metrics for a check-in. Range
// validation (1-10) happens at the UI boundary, not here. A zero Date means
// "now".
type UpsertInput struct {
	Energy int
	Mood   int
	Focus  int
	Date   time.Time
}

// DateKey formats a date into YYYY-MM-DD using its local calendar date.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// parseDateKey converts a YYYY-MM-DD key back into a local date. Malformed
// month or day segments default to 1, never 0, avoiding invalid date
// rollovers; a malformed year parses as 0.
func parseDateKey(key string, loc *time.Location) time.Time {
	year, month, day := 0, 1, 1
	parts := splitDateKey(key)
	if len(parts) > 0 {
		year = atoiOr(parts[0], 0)
	}
	if len(parts) > 1 {
		month = atoiOr(parts[1], 1)
		if month == 0 {
			month = 1
		}
	}
	if len(parts) > 2 {
		day = atoiOr(parts[2], 1)
		if day == 0 {
			day = 1
		}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// LoadAll reads the persisted collection, sorted ascending by date key. An
// absent or unparseable collection yields an empty list; malformed elements
// are dropped silently, tolerating corruption over crashing. The only error
// surfaced is a storage read failure.
func (s *Store) LoadAll() ([]models.DailyCheckin, error) {
	data, ok, err := s.kv.Get(constants.KeyCheckins)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.DailyCheckin{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		logger.Warn("Check-in collection is unparseable, treating as empty", "error", err)
		return []models.DailyCheckin{}, nil
	}

	checkins := make([]models.DailyCheckin, 0, len(raw))
	for _, element := range raw {
		record, ok := models.DecodeCheckin(element)
		if !ok {
			logger.Debug("Dropping malformed check-in record")
			continue
		}
		checkins = append(checkins, record)
	}

	sortByDateKey(checkins)
	return checkins, nil
}

// LoadForDate returns the check-in for the given date key, or nil if none
// exists.
func (s *Store) LoadForDate(dateKey string) (*models.DailyCheckin, error) {
	checkins, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range checkins {
		if checkins[i].DateKey == dateKey {
			return &checkins[i], nil
		}
	}
	return nil, nil
}

// UpsertToday creates or overwrites the check-in for the input's date
// (defaulting to now), stamping UpdatedAt with the current epoch milliseconds.
// The collection invariant of at most one record per date key holds across
// repeated calls for the same day.
func (s *Store) UpsertToday(in UpsertInput) (models.DailyCheckin, error) {
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	record := models.DailyCheckin{
		DateKey:   DateKey(date),
		Energy:    in.Energy,
		Mood:      in.Mood,
		Focus:     in.Focus,
		UpdatedAt: s.now().UnixMilli(),
	}

	checkins, err := s.LoadAll()
	if err != nil {
		return models.DailyCheckin{}, err
	}

	replaced := false
	for i := range checkins {
		if checkins[i].DateKey == record.DateKey {
			checkins[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		checkins = append(checkins, record)
	}

	if err := s.persist(checkins); err != nil {
		return models.DailyCheckin{}, err
	}
	return record, nil
}

// PurgeOlderThan removes every record whose local date falls before the
// retention cutoff and returns the removed count. The window is inclusive:
// days=90 keeps today plus the 89 preceding calendar days. When nothing is
// removed no write is performed.
func (s *Store) PurgeOlderThan(days int) (int, error) {
	if days <= 0 {
		days = constants.DefaultRetentionDays
	}

	checkins, err := s.LoadAll()
	if err != nil {
		return 0, err
	}

	now := s.now()
	loc := now.Location()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(days - 1))

	kept := make([]models.DailyCheckin, 0, len(checkins))
	for _, record := range checkins {
		if parseDateKey(record.DateKey, loc).Before(cutoff) {
			continue
		}
		kept = append(kept, record)
	}

	removed := len(checkins) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.persist(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// ClearAll deletes the entire persisted collection.
func (s *Store) ClearAll() error {
	return s.kv.Delete(constants.KeyCheckins)
}

// persist writes the full collection sorted ascending by date key. Both write
// paths sort, so the on-disk order guarantee is uniform.
func (s *Store) persist(checkins []models.DailyCheckin) error {
	sortByDateKey(checkins)
	data, err := json.Marshal(checkins)
	if err != nil {
		return err
	}
	return s.kv.Set(constants.KeyCheckins, string(data))
}

func sortByDateKey(checkins []models.DailyCheckin) {
	sort.Slice(checkins, func(i, j int) bool {
		return checkins[i].DateKey < checkins[j].DateKey
	})
}
