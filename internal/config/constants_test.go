package config

import "testing"

func TestConstants(t *testing.T) {
	if TickInterval <= 0 {
		t.Fatalf("TickInterval must be positive")
	}
	if DefaultSessionGoal < MinSessionGoal {
		t.Fatalf("DefaultSessionGoal below minimum")
	}
	if MaxSessionGoal < DefaultSessionGoal {
		t.Fatalf("MaxSessionGoal below default")
	}
	if AppName == "" {
		t.Fatalf("AppName should not be empty")
	}
	if DBFileName == "" {
		t.Fatalf("DBFileName should not be empty")
	}
	if SnapshotKey != "pomodoroState" {
		t.Fatalf("SnapshotKey = %q", SnapshotKey)
	}
	if _, ok := DefaultPresets()[DefaultPresetKey]; !ok {
		t.Fatalf("DefaultPresetKey %q missing from built-in presets", DefaultPresetKey)
	}
	if MinProgressWidth > TargetProgressWidth {
		t.Fatalf("unexpected progress width constants")
	}
}
