package config

import "time"

// Timer defaults.
const (
	TickInterval       = time.Second
	DefaultSessionGoal = 4
	MinSessionGoal     = 1
	DefaultPresetKey   = "25/5"
)

// Resume policies applied when a running snapshot is restored.
const (
	ResumeAuto   = "auto"
	ResumeManual = "manual"
)

// Phase labels shown to the user.
const (
	LabelWork  = "Work"
	LabelBreak = "Break"
)

// Database/application settings.
const (
	AppName        = "pomo"
	DBFileName     = "pomo.db"
	LogFileName    = "pomo.log"
	ConfigFileName = "config.yaml"
	SnapshotKey    = "pomodoroState"
)

// CompletionMessage is shown when the session goal is reached.
const CompletionMessage = "All sessions complete! Great job!"
