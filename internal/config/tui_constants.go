package config

// Layout constants.
const (
	// MinProgressWidth is the narrowest progress bar rendered.
	MinProgressWidth = 10

	// TargetProgressWidth is the preferred progress bar width.
	TargetProgressWidth = 40

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)

// Input constraints.
const (
	// MaxGoalDigits bounds the session goal input field.
	MaxGoalDigits = 3

	// MaxSessionGoal is the largest goal the goal input accepts.
	MaxSessionGoal = 999
)
