package state

import (
	"bytes"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDecodeTolerance(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte(""),
		[]byte("{"),
		[]byte(`"just a string"`),
		[]byte(`{"weeks": 42}`),
		[]byte(`{}`),
	}
	for _, raw := range cases {
		s := Decode(raw)
		if s == nil || s.Weeks == nil || s.Unlocked == nil {
			t.Fatalf("Decode(%q) must yield the default empty store", raw)
		}
		if len(s.Weeks) != 0 || len(s.Unlocked) != 0 {
			t.Fatalf("Decode(%q) must be empty, got %+v", raw, s)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := NewHistoryStore()
	s.SetMark(day(2024, time.January, 1), "exercise", true)
	s.SetMark(day(2024, time.January, 2), "fastfood", true)
	s.Unlock([]string{"first_spark"})

	raw, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back := Decode(raw)
	raw2, err := back.Encode()
	if err != nil {
		t.Fatalf("Encode again: %v", err)
	}
	if !bytes.Equal(raw, raw2) {
		t.Fatalf("round trip not stable:\n%s\nvs\n%s", raw, raw2)
	}
}

func TestEmptyStoreEncodesInitialShape(t *testing.T) {
	raw, err := NewHistoryStore().Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// unlocked must serialize as [], not null.
	if !bytes.Contains(raw, []byte(`"unlocked": []`)) {
		t.Fatalf("unexpected initial shape: %s", raw)
	}
	if !bytes.Contains(raw, []byte(`"weeks": {}`)) {
		t.Fatalf("unexpected initial shape: %s", raw)
	}
}

func TestSetMarkDerivesWeekKey(t *testing.T) {
	s := NewHistoryStore()
	// Sunday 2024-01-07 belongs to the week of Monday 2024-01-01.
	s.SetMark(day(2024, time.January, 7), "reading", true)

	bucket, ok := s.Weeks["2024-01-01"]
	if !ok {
		t.Fatalf("expected week bucket 2024-01-01, have %v", s.Weeks)
	}
	if !bucket["2024-01-07"]["reading"] {
		t.Fatalf("mark not recorded")
	}
	if rec := s.Record("2024-01-07"); rec == nil || !rec["reading"] {
		t.Fatalf("Record lookup failed")
	}
}

func TestToggleOnNullDocumentEntries(t *testing.T) {
	// A hand-edited or corrupted document can carry JSON nulls where a
	// week bucket or daily record belongs. Decoding keeps them; the first
	// write must treat them like missing entries, not crash.
	raw := []byte(`{"weeks":{"2024-01-01":{"2024-01-01":null},"2024-01-08":null},"unlocked":[]}`)
	s := Decode(raw)

	if !s.Toggle(day(2024, time.January, 1), "exercise") {
		t.Fatalf("toggle on null record should mark")
	}
	if !s.Record("2024-01-01")["exercise"] {
		t.Fatalf("mark on null record not stored")
	}

	if !s.Toggle(day(2024, time.January, 8), "reading") {
		t.Fatalf("toggle in null bucket should mark")
	}
	if !s.Record("2024-01-08")["reading"] {
		t.Fatalf("mark in null bucket not stored")
	}
}

func TestToggleFlips(t *testing.T) {
	s := NewHistoryStore()
	d := day(2024, time.March, 5)
	if !s.Toggle(d, "exercise") {
		t.Fatalf("first toggle should mark")
	}
	if s.Toggle(d, "exercise") {
		t.Fatalf("second toggle should clear")
	}
	if s.Record("2024-03-05")["exercise"] {
		t.Fatalf("mark should be cleared")
	}
}

func TestDateKeysSorted(t *testing.T) {
	s := NewHistoryStore()
	s.SetMark(day(2024, time.February, 10), "exercise", true)
	s.SetMark(day(2024, time.January, 2), "exercise", true)
	s.SetMark(day(2024, time.January, 30), "exercise", true)

	keys := s.DateKeys()
	want := []string{"2024-01-02", "2024-01-30", "2024-02-10"}
	if len(keys) != len(want) {
		t.Fatalf("keys=%v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys=%v, want %v", keys, want)
		}
	}
}

func TestUnlockMonotonicNoDuplicates(t *testing.T) {
	s := NewHistoryStore()
	s.Unlock([]string{"a", "b"})
	s.Unlock([]string{"b", "c"})
	if len(s.Unlocked) != 3 {
		t.Fatalf("unlocked=%v, want a,b,c", s.Unlocked)
	}
	if !s.HasUnlocked("a") || !s.HasUnlocked("c") {
		t.Fatalf("missing unlocked ids: %v", s.Unlocked)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewHistoryStore()
	d := day(2024, time.January, 1)
	s.SetMark(d, "exercise", true)

	c := s.Clone()
	s.SetMark(d, "exercise", false)
	s.Unlock([]string{"x"})

	if !c.Record("2024-01-01")["exercise"] {
		t.Fatalf("clone mutated with original")
	}
	if c.HasUnlocked("x") {
		t.Fatalf("clone unlocked set mutated with original")
	}
}
