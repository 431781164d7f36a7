package progress

import (
	"time"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/calendar"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/state"
)

const (
	// A completed 4-day streak pays double once, then the counter restarts.
	streakBonusLength = 4
	// At 3 consecutive days the near-bonus hint lights up.
	streakNearLength = 3

	// The ideal trajectory climbs 1000 RUB per day from today's balance.
	idealSlopePerDay = 1000

	chartDaysBefore = 13
	chartDaysAfter  = 14
)

// StreakState is the per-task streak counter after folding the whole
// history, plus the near-bonus hint. Recomputed from scratch on every
// pass; never persisted.
type StreakState struct {
	Count     int
	NearBonus bool
}

// ChartPoint is one day of the bounded chart window. Balance is nil where
// no record exists for that date; Ideal is nil before today and whenever
// today has no recorded balance to anchor the projection.
type ChartPoint struct {
	DateKey string
	Label   string
	Balance *int
	Ideal   *int
}

// AchievementContext is the derived summary achievement predicates run
// against.
type AchievementContext struct {
	Balance          int
	CleanWeek        bool
	PerfectDay       bool
	DualStrengthWeek bool
}

// Report is the full output of one computation pass.
type Report struct {
	Balance int
	Chart   []ChartPoint
	Streaks map[string]StreakState
	Context AchievementContext
}

// Compute folds the whole history into balance, streaks, the chart window
// and the achievement context. It is a pure function of (store, catalog,
// now): identical inputs produce identical reports, and it never fails;
// unknown rule ids and unparsable date-keys contribute nothing.
//
// The traversal walks every calendar day from the first recorded date
// through max(last recorded date, today), not just the recorded ones, so
// a day with no record breaks streaks exactly like an unchecked day.
func Compute(store *state.HistoryStore, cat rules.Catalog, now time.Time) Report {
	today := calendar.Midnight(now)
	todayKey := calendar.DateKey(today)

	recorded := map[string]bool{}
	var first, last time.Time
	for _, key := range store.DateKeys() {
		d, err := calendar.ParseKey(key)
		if err != nil {
			continue
		}
		if !recorded[key] {
			recorded[key] = true
			if first.IsZero() || d.Before(first) {
				first = d
			}
			if last.IsZero() || d.After(last) {
				last = d
			}
		}
	}
	if len(recorded) == 0 {
		// Seed with today so downstream code never sees an empty series.
		recorded[todayKey] = true
		first, last = today, today
	}

	end := last
	if today.After(end) {
		end = today
	}

	counters := map[string]int{}
	balanceByKey := map[string]int{}
	running := 0
	ctx := AchievementContext{}

	for d := first; !d.After(end); d = calendar.AddDays(d, 1) {
		key := calendar.DateKey(d)
		idx := calendar.DayIndex(d)
		rec := store.Record(key)

		dayReward := 0
		availableCount := 0
		allAvailableDone := true
		for _, task := range cat.Tasks {
			available := task.Available(idx, d, now)
			if available {
				availableCount++
				if rec == nil || !rec[task.ID] {
					allAvailableDone = false
				}
			}
			if !available || rec == nil || !rec[task.ID] {
				counters[task.ID] = 0
				continue
			}
			n := counters[task.ID] + 1
			if n >= streakBonusLength {
				dayReward += task.Reward * 2
				n = 0
			} else {
				dayReward += task.Reward
			}
			counters[task.ID] = n
		}

		dayFine := 0
		if rec != nil {
			for _, fine := range cat.Fines {
				if rec[fine.ID] {
					dayFine += fine.Pricing.AmountFor(0)
				}
			}
		}

		running += dayReward - dayFine

		if recorded[key] {
			balanceByKey[key] = running
			if availableCount > 0 && allAvailableDone {
				ctx.PerfectDay = true
			}
		}
	}

	ctx.Balance = running
	ctx.CleanWeek = hasCleanWeek(store, cat)
	ctx.DualStrengthWeek = hasDualStrengthWeek(store, cat)

	streaks := map[string]StreakState{}
	for _, task := range cat.Tasks {
		n := counters[task.ID]
		streaks[task.ID] = StreakState{Count: n, NearBonus: n >= streakNearLength}
	}

	return Report{
		Balance: running,
		Chart:   buildChart(balanceByKey, today, todayKey),
		Streaks: streaks,
		Context: ctx,
	}
}

func buildChart(balanceByKey map[string]int, today time.Time, todayKey string) []ChartPoint {
	todayBalance, hasToday := balanceByKey[todayKey]

	points := make([]ChartPoint, 0, chartDaysBefore+chartDaysAfter+1)
	for offset := -chartDaysBefore; offset <= chartDaysAfter; offset++ {
		d := calendar.AddDays(today, offset)
		p := ChartPoint{
			DateKey: calendar.DateKey(d),
			Label:   d.Format("Jan 2"),
		}
		if b, ok := balanceByKey[p.DateKey]; ok {
			v := b
			p.Balance = &v
		}
		if hasToday && offset >= 0 {
			v := todayBalance + offset*idealSlopePerDay
			p.Ideal = &v
		}
		points = append(points, p)
	}
	return points
}

// hasCleanWeek reports whether any week with a full 7-day record set has
// zero fines on every recorded day.
func hasCleanWeek(store *state.HistoryStore, cat rules.Catalog) bool {
	for _, bucket := range store.Weeks {
		if len(bucket) < 7 {
			continue
		}
		clean := true
		for _, rec := range bucket {
			for _, fine := range cat.Fines {
				if rec[fine.ID] {
					clean = false
					break
				}
			}
			if !clean {
				break
			}
		}
		if clean {
			return true
		}
	}
	return false
}

// hasDualStrengthWeek reports whether any week has the strength task
// marked on both of its required weekdays.
func hasDualStrengthWeek(store *state.HistoryStore, cat rules.Catalog) bool {
	task, ok := cat.Task(rules.StrengthTaskID)
	if !ok {
		return false
	}
	days := task.ExplicitDays()
	if len(days) == 0 {
		return false
	}

	for weekKey, bucket := range store.Weeks {
		monday, err := calendar.ParseKey(weekKey)
		if err != nil {
			continue
		}
		all := true
		for _, idx := range days {
			dateKey := calendar.DateKey(calendar.AddDays(monday, idx))
			if !bucket[dateKey][task.ID] {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
