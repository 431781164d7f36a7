package progress

import (
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
)

// Achievement is a badge evaluated against the AchievementContext.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker evaluates the badge catalog against one context.
type AchievementChecker struct {
	ctx AchievementContext
}

func NewAchievementChecker(ctx AchievementContext) *AchievementChecker {
	return &AchievementChecker{ctx: ctx}
}

// GetAchievements returns the full catalog with earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Balance milestones
		c.balanceAchievement("first_spark", "First Spark", "Reach a positive balance", "✨", 1),
		c.balanceAchievement("ten_grand", "Ten Grand", "Reach 10 000 RUB", "⚡", 10000),
		c.balanceAchievement("half_reactor", "Half Reactor", "Reach half the mission goal", "🔋", rules.Goal/2),
		c.balanceAchievement("the_watch", "The Watch", "Reach the 60 000 RUB mission goal", "⌚", rules.Goal),

		// Pattern badges
		c.flagAchievement("clean_week", "Clean Week", "A fully recorded week without a single fine", "🧼", c.ctx.CleanWeek),
		c.flagAchievement("perfect_day", "Perfect Day", "Every available task done in one day", "✅", c.ctx.PerfectDay),
		c.flagAchievement("iron_week", "Iron Week", "Both strength sessions in one week", "💪", c.ctx.DualStrengthWeek),
	}
}

// CountEarned returns how many badges are currently earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

// CountTotal returns the catalog size.
func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) balanceAchievement(id, title, desc, icon string, threshold int) Achievement {
	return Achievement{ID: id, Title: title, Description: desc, Icon: icon, Earned: c.ctx.Balance >= threshold}
}

func (c *AchievementChecker) flagAchievement(id, title, desc, icon string, earned bool) Achievement {
	return Achievement{ID: id, Title: title, Description: desc, Icon: icon, Earned: earned}
}

// NewlyEarned returns the badges whose predicate holds now and whose id is
// not yet in the unlocked set. The caller persists the union; ids already
// unlocked stay unlocked even if their condition no longer holds.
func NewlyEarned(unlocked []string, ctx AchievementContext) []Achievement {
	seen := map[string]bool{}
	for _, id := range unlocked {
		seen[id] = true
	}

	var out []Achievement
	for _, a := range NewAchievementChecker(ctx).GetAchievements() {
		if a.Earned && !seen[a.ID] {
			out = append(out, a)
		}
	}
	return out
}
