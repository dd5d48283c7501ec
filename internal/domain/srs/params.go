package srs

// Params defines all configurable parameters for the scheduling
// algorithm. The concrete constants are not dictated by the rating and
// status contracts, so they live here rather than being hard-coded at
// the call sites, and can be overridden from application configuration.
type Params struct {
	// MinimumIntervalDays is the floor every forgotten word resets to,
	// and the smallest interval any rating can produce.
	MinimumIntervalDays int

	// FirstReviewEasyDays is the interval assigned when the very first
	// rating on a word is easy.
	FirstReviewEasyDays int

	// HardGrowthFactor multiplies the previous interval on a hard
	// rating. Growth is bounded by LearningCeilingDays.
	HardGrowthFactor float64

	// EasyGrowthFactor multiplies the previous interval on an easy rating.
	EasyGrowthFactor float64

	// LearningCeilingDays caps intervals produced by hard ratings. It
	// sits below the mastery threshold so a word can never be mastered
	// through hard ratings alone.
	LearningCeilingDays int

	// MasteryThresholdDays is the interval a word must exceed before it
	// can be promoted to mastered.
	MasteryThresholdDays int

	// MasteryStreak is the minimum number of consecutive non-forgot
	// ratings required for promotion to mastered.
	MasteryStreak int
}

// NewDefaultParams creates a Params instance with the default tuning.
// The values are SM-2 flavoured: easy reviews grow the interval by the
// classic 2.5 ease factor, hard reviews by 1.2.
func NewDefaultParams() *Params {
	return &Params{
		MinimumIntervalDays:  1,
		FirstReviewEasyDays:  2,
		HardGrowthFactor:     1.2,
		EasyGrowthFactor:     2.5,
		LearningCeilingDays:  14,
		MasteryThresholdDays: 21,
		MasteryStreak:        3,
	}
}

// ParamsConfig allows overriding individual defaults when building a
// Params instance from configuration. Zero values keep the default.
type ParamsConfig struct {
	MinimumIntervalDays  int
	FirstReviewEasyDays  int
	HardGrowthFactor     float64
	EasyGrowthFactor     float64
	LearningCeilingDays  int
	MasteryThresholdDays int
	MasteryStreak        int
}

// NewParams creates a Params instance with custom configuration applied
// over the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinimumIntervalDays > 0 {
		params.MinimumIntervalDays = config.MinimumIntervalDays
	}
	if config.FirstReviewEasyDays > 0 {
		params.FirstReviewEasyDays = config.FirstReviewEasyDays
	}
	if config.HardGrowthFactor > 0 {
		params.HardGrowthFactor = config.HardGrowthFactor
	}
	if config.EasyGrowthFactor > 0 {
		params.EasyGrowthFactor = config.EasyGrowthFactor
	}
	if config.LearningCeilingDays > 0 {
		params.LearningCeilingDays = config.LearningCeilingDays
	}
	if config.MasteryThresholdDays > 0 {
		params.MasteryThresholdDays = config.MasteryThresholdDays
	}
	if config.MasteryStreak > 0 {
		params.MasteryStreak = config.MasteryStreak
	}

	return params
}
