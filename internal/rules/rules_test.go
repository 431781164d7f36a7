package rules

import (
	"testing"
	"time"
)

func localDate(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
}

func TestWeekdaysOnlyBlocksWeekend(t *testing.T) {
	task := Task{ID: "wake", Reward: 100, Constraints: []Constraint{{Kind: ConstraintWeekdaysOnly}}}
	now := localDate(2024, time.January, 10, 12)

	// 2024-01-01 Mon .. 2024-01-07 Sun.
	for idx := 0; idx < 7; idx++ {
		date := localDate(2024, time.January, 1+idx, 0)
		got := task.Available(idx, date, now)
		want := idx < 5
		if got != want {
			t.Fatalf("weekdaysOnly idx=%d: got %v, want %v", idx, got, want)
		}
	}
}

func TestExplicitDays(t *testing.T) {
	task := Task{ID: "strength", Constraints: []Constraint{{Kind: ConstraintExplicitDays, Days: []int{2, 5}}}}
	now := localDate(2024, time.January, 10, 12)

	for idx := 0; idx < 7; idx++ {
		date := localDate(2024, time.January, 1+idx, 0)
		got := task.Available(idx, date, now)
		want := idx == 2 || idx == 5
		if got != want {
			t.Fatalf("explicitDays idx=%d: got %v, want %v", idx, got, want)
		}
	}
}

func TestDeadlineGatesOnlyToday(t *testing.T) {
	task := Task{ID: "wake730", Constraints: []Constraint{{Kind: ConstraintDeadline, Hour: 8}}}

	today := localDate(2024, time.January, 3, 0)

	// Before the deadline hour today: available.
	if !task.Available(2, today, localDate(2024, time.January, 3, 7)) {
		t.Fatalf("expected available before deadline")
	}
	// At/after the deadline hour today: unavailable.
	if task.Available(2, today, localDate(2024, time.January, 3, 8)) {
		t.Fatalf("expected unavailable at deadline hour")
	}
	// The same date evaluated from a later day ignores the deadline.
	if !task.Available(2, today, localDate(2024, time.January, 5, 23)) {
		t.Fatalf("historical date must ignore deadline")
	}
}

func TestCombinedConstraints(t *testing.T) {
	task := Task{ID: "wake730", Constraints: []Constraint{
		{Kind: ConstraintWeekdaysOnly},
		{Kind: ConstraintDeadline, Hour: 8},
	}}
	// Saturday stays blocked regardless of the clock.
	sat := localDate(2024, time.January, 6, 0)
	if task.Available(5, sat, localDate(2024, time.January, 10, 1)) {
		t.Fatalf("weekend must stay unavailable with combined constraints")
	}
}

func TestUnconstrainedAlwaysAvailable(t *testing.T) {
	task := Task{ID: "exercise"}
	now := localDate(2024, time.January, 6, 23)
	for idx := 0; idx < 7; idx++ {
		if !task.Available(idx, localDate(2024, time.January, 1+idx, 0), now) {
			t.Fatalf("unconstrained task unavailable at idx=%d", idx)
		}
	}
}

func TestPricingAmountFor(t *testing.T) {
	fixed := Pricing{Kind: PricingFixed, Base: 1000}
	if got := fixed.AmountFor(3); got != 1000 {
		t.Fatalf("fixed fine: got %d, want 1000", got)
	}

	prog := Pricing{Kind: PricingProgressive, Base: 3000, Increment: 1000}
	if got := prog.AmountFor(0); got != 3000 {
		t.Fatalf("progressive first: got %d, want 3000", got)
	}
	if got := prog.AmountFor(2); got != 5000 {
		t.Fatalf("progressive third: got %d, want 5000", got)
	}
	if got := prog.AmountFor(-1); got != 3000 {
		t.Fatalf("progressive negative repeats: got %d, want 3000", got)
	}
}

func TestDefaultCatalogLookup(t *testing.T) {
	cat := Default()
	if _, ok := cat.Task("exercise"); !ok {
		t.Fatalf("exercise missing from catalog")
	}
	if _, ok := cat.Fine("fastfood"); !ok {
		t.Fatalf("fastfood missing from catalog")
	}
	if _, ok := cat.Task("nope"); ok {
		t.Fatalf("unexpected task hit")
	}
	if f, _ := cat.Fine("smoking"); f.Pricing.Kind != PricingProgressive {
		t.Fatalf("smoking should be progressive")
	}
}
