package state

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/calendar"
)

// DailyRecord maps rule id -> done/violated for one calendar date.
type DailyRecord map[string]bool

// WeekBucket maps date-key -> DailyRecord for the (up to 7) dates of one
// Monday-starting week.
type WeekBucket map[string]DailyRecord

// HistoryStore is the whole persisted document: week buckets plus the
// unlocked achievement ids. It is the single source of truth; balance and
// streaks are always recomputed from it, never cached.
type HistoryStore struct {
	Weeks    map[string]WeekBucket `json:"weeks"`
	Unlocked []string              `json:"unlocked"`
}

// NewHistoryStore returns the default empty document, matching the
// server's initial state {weeks:{}, unlocked:[]}.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		Weeks:    map[string]WeekBucket{},
		Unlocked: []string{},
	}
}

// Decode parses a persisted document. Corrupt JSON, a wrong top-level
// shape, or missing keys all degrade to the default empty store; decoding
// never fails.
func Decode(raw []byte) *HistoryStore {
	s := NewHistoryStore()
	if len(raw) == 0 {
		return s
	}
	var parsed HistoryStore
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return s
	}
	if parsed.Weeks != nil {
		s.Weeks = parsed.Weeks
	}
	if parsed.Unlocked != nil {
		s.Unlocked = parsed.Unlocked
	}
	return s
}

// Encode serializes the document for persistence.
func (s *HistoryStore) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Clone returns a deep copy, used to snapshot the document for the
// debounced saver while the live copy keeps mutating.
func (s *HistoryStore) Clone() *HistoryStore {
	out := NewHistoryStore()
	for weekKey, bucket := range s.Weeks {
		nb := WeekBucket{}
		for dateKey, rec := range bucket {
			nr := DailyRecord{}
			for id, v := range rec {
				nr[id] = v
			}
			nb[dateKey] = nr
		}
		out.Weeks[weekKey] = nb
	}
	out.Unlocked = append(out.Unlocked, s.Unlocked...)
	return out
}

// Record returns the DailyRecord for a date-key, or nil when the date was
// never touched.
func (s *HistoryStore) Record(dateKey string) DailyRecord {
	date, err := calendar.ParseKey(dateKey)
	if err != nil {
		return nil
	}
	bucket, ok := s.Weeks[calendar.DateKey(calendar.WeekStart(date))]
	if !ok {
		return nil
	}
	return bucket[dateKey]
}

// SetMark records a rule as done/violated (or not) for the given date,
// creating the week bucket and daily record as needed. The week key is
// always derived from the date, so a date can never land in the wrong
// bucket. A nil bucket or record (a JSON null in a hand-edited document)
// is treated like a missing one.
func (s *HistoryStore) SetMark(date time.Time, ruleID string, marked bool) {
	weekKey := calendar.DateKey(calendar.WeekStart(date))
	dateKey := calendar.DateKey(date)

	bucket := s.Weeks[weekKey]
	if bucket == nil {
		bucket = WeekBucket{}
		s.Weeks[weekKey] = bucket
	}
	rec := bucket[dateKey]
	if rec == nil {
		rec = DailyRecord{}
		bucket[dateKey] = rec
	}
	rec[ruleID] = marked
}

// Toggle flips a rule's mark for the given date and returns the new value.
func (s *HistoryStore) Toggle(date time.Time, ruleID string) bool {
	rec := s.Record(calendar.DateKey(date))
	next := rec == nil || !rec[ruleID]
	s.SetMark(date, ruleID, next)
	return next
}

// DateKeys returns every recorded date-key in ascending (chronological)
// order.
func (s *HistoryStore) DateKeys() []string {
	var keys []string
	for _, bucket := range s.Weeks {
		for dateKey := range bucket {
			keys = append(keys, dateKey)
		}
	}
	sort.Strings(keys)
	return keys
}

// HasUnlocked reports whether an achievement id is already unlocked.
func (s *HistoryStore) HasUnlocked(id string) bool {
	for _, u := range s.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// Unlock appends the given achievement ids, skipping ones already present.
// Unlocking is monotonic; nothing is ever removed.
func (s *HistoryStore) Unlock(ids []string) {
	for _, id := range ids {
		if !s.HasUnlocked(id) {
			s.Unlocked = append(s.Unlocked, id)
		}
	}
}
