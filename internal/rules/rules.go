package rules

// Goal is the mission target balance, in RUB.
const Goal = 60000

// StrengthTaskID is the task whose two required weekdays feed the
// dual-strength-week achievement.
const StrengthTaskID = "strength"

// ConstraintKind tags the availability constraint variants. Each kind is
// handled exhaustively in Available; a new kind is a closed-set addition.
type ConstraintKind string

const (
	ConstraintWeekdaysOnly ConstraintKind = "weekdays_only"
	ConstraintExplicitDays ConstraintKind = "explicit_days"
	ConstraintDeadline     ConstraintKind = "deadline"
)

func (k ConstraintKind) IsValid() bool {
	switch k {
	case ConstraintWeekdaysOnly, ConstraintExplicitDays, ConstraintDeadline:
		return true
	default:
		return false
	}
}

// Constraint restricts when a task can be checked. Days is used by
// explicit_days (Monday=0..Sunday=6), Hour by deadline (local hour-of-day).
type Constraint struct {
	Kind ConstraintKind
	Days []int
	Hour int
}

// Task is an immutable catalog entry that earns a reward when checked.
type Task struct {
	ID          string
	Title       string
	Reward      int
	Constraints []Constraint
}

// ExplicitDays returns the weekday indices of the first explicit-days
// constraint, or nil when the task is not day-restricted.
func (t Task) ExplicitDays() []int {
	for _, c := range t.Constraints {
		if c.Kind == ConstraintExplicitDays {
			return c.Days
		}
	}
	return nil
}

// PricingKind tags how a fine's amount is computed.
type PricingKind string

const (
	PricingFixed       PricingKind = "fixed"
	PricingProgressive PricingKind = "progressive"
)

// Pricing is the fine amount rule. Fixed fines always cost Base.
// Progressive fines cost Base + repeatsToday*Increment.
type Pricing struct {
	Kind      PricingKind
	Base      int
	Increment int
}

// AmountFor returns the fine amount given the number of prior same-day
// occurrences. The boolean-per-day store always passes 0, which makes a
// progressive fine cost its base; the occurrence hook stays in place for
// a future count-per-day model.
func (p Pricing) AmountFor(repeatsToday int) int {
	switch p.Kind {
	case PricingProgressive:
		if repeatsToday < 0 {
			repeatsToday = 0
		}
		return p.Base + repeatsToday*p.Increment
	case PricingFixed:
		fallthrough
	default:
		return p.Base
	}
}

// Fine is an immutable catalog entry that incurs a penalty when marked.
type Fine struct {
	ID      string
	Title   string
	Pricing Pricing
}

// Catalog bundles the rule tables loaded once per process.
type Catalog struct {
	Tasks []Task
	Fines []Fine
}

// Task looks up a task rule by id.
func (c Catalog) Task(id string) (Task, bool) {
	for _, t := range c.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Fine looks up a fine rule by id.
func (c Catalog) Fine(id string) (Fine, bool) {
	for _, f := range c.Fines {
		if f.ID == id {
			return f, true
		}
	}
	return Fine{}, false
}

// Default returns the built-in StarkHub catalog.
func Default() Catalog {
	return Catalog{
		Tasks: []Task{
			{
				ID: "wake730", Title: "Wake Up 07:30", Reward: 100,
				Constraints: []Constraint{
					{Kind: ConstraintWeekdaysOnly},
					{Kind: ConstraintDeadline, Hour: 8},
				},
			},
			{ID: "exercise", Title: "Exercise", Reward: 100},
			{ID: "cleanFood", Title: "Clean Food", Reward: 250},
			{ID: "noPorn", Title: "Dopamine Fast", Reward: 250},
			{
				ID: "strength", Title: "Strength Training", Reward: 150,
				// Wednesday and Saturday.
				Constraints: []Constraint{{Kind: ConstraintExplicitDays, Days: []int{2, 5}}},
			},
			{ID: "jarvisV2", Title: "Project: JARVIS V2", Reward: 200},
			{ID: "english", Title: "English Session (1h)", Reward: 200},
			{ID: "reading", Title: "Reading (1h)", Reward: 100},
		},
		Fines: []Fine{
			{ID: "smoking", Title: "Smoking (Level 5 Alert)", Pricing: Pricing{Kind: PricingProgressive, Base: 3000, Increment: 1000}},
			{ID: "fastfood", Title: "Fastfood", Pricing: Pricing{Kind: PricingFixed, Base: 1000}},
			{ID: "alcohol", Title: "Alcohol", Pricing: Pricing{Kind: PricingFixed, Base: 1000}},
		},
	}
}
