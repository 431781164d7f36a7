package progress

import (
	"testing"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
)

func achievementIDs(list []Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestBalanceMilestones(t *testing.T) {
	checker := NewAchievementChecker(AchievementContext{Balance: rules.Goal})
	for _, a := range checker.GetAchievements() {
		switch a.ID {
		case "first_spark", "ten_grand", "half_reactor", "the_watch":
			if !a.Earned {
				t.Fatalf("%s not earned at goal balance", a.ID)
			}
		}
	}

	checker = NewAchievementChecker(AchievementContext{Balance: -500})
	if checker.CountEarned() != 0 {
		t.Fatalf("negative balance should earn nothing, got %d", checker.CountEarned())
	}
}

func TestFlagAchievements(t *testing.T) {
	ctx := AchievementContext{CleanWeek: true, DualStrengthWeek: true}
	earned := map[string]bool{}
	for _, a := range NewAchievementChecker(ctx).GetAchievements() {
		earned[a.ID] = a.Earned
	}
	if !earned["clean_week"] || !earned["iron_week"] {
		t.Fatalf("flag achievements not earned: %v", earned)
	}
	if earned["perfect_day"] {
		t.Fatalf("perfect_day earned without the flag")
	}
}

func TestNewlyEarnedSkipsUnlocked(t *testing.T) {
	ctx := AchievementContext{Balance: 15000, PerfectDay: true}

	newly := NewlyEarned(nil, ctx)
	ids := achievementIDs(newly)
	want := map[string]bool{"first_spark": true, "ten_grand": true, "perfect_day": true}
	if len(ids) != len(want) {
		t.Fatalf("newly=%v, want %v", ids, want)
	}
	for _, id := range ids {
		if !want[id] {
			t.Fatalf("unexpected newly-earned %s", id)
		}
	}

	// Already-unlocked ids never come back, even while still true.
	newly = NewlyEarned([]string{"first_spark", "ten_grand", "perfect_day"}, ctx)
	if len(newly) != 0 {
		t.Fatalf("expected nothing new, got %v", achievementIDs(newly))
	}
}

func TestUnlockedSurvivesConditionGoingFalse(t *testing.T) {
	// The evaluator only ever adds: with the condition now false and the id
	// already unlocked, the id simply does not reappear. Nothing ever
	// removes an unlocked id, HistoryStore.Unlock included.
	newly := NewlyEarned([]string{"perfect_day"}, AchievementContext{})
	for _, a := range newly {
		if a.ID == "perfect_day" {
			t.Fatalf("perfect_day must not be re-reported")
		}
	}
}

func TestCatalogCounts(t *testing.T) {
	checker := NewAchievementChecker(AchievementContext{Balance: 1})
	if checker.CountTotal() != 7 {
		t.Fatalf("catalog size=%d, want 7", checker.CountTotal())
	}
	if checker.CountEarned() != 1 {
		t.Fatalf("earned=%d, want just first_spark", checker.CountEarned())
	}
}
