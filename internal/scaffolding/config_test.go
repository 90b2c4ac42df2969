package scaffolding

import (
	"testing"

	"github.com/yungbote/ccis-backend/internal/ccis"
)

func TestBaselineForLevel_NoviceHasFullSupport(t *testing.T) {
	cfg, ok := BaselineForLevel(ccis.LevelNovice)
	if !ok {
		t.Fatalf("no baseline for novice level")
	}
	if !cfg.Hints.Enabled {
		t.Errorf("novice baseline hints disabled, want enabled")
	}
	if cfg.Hints.Frequency != HintsUnlimited {
		t.Errorf("novice hint frequency = %q, want %q", cfg.Hints.Frequency, HintsUnlimited)
	}
	if cfg.TimeManagement.Pressure != "none" {
		t.Errorf("novice time pressure = %q, want none", cfg.TimeManagement.Pressure)
	}
}

func TestBaselineForLevel_AutonomousHasNoSupport(t *testing.T) {
	cfg, ok := BaselineForLevel(ccis.LevelAutonomous)
	if !ok {
		t.Fatalf("no baseline for autonomous level")
	}
	if cfg.Hints.Enabled {
		t.Errorf("autonomous baseline hints enabled, want disabled")
	}
	if cfg.Hints.Frequency != HintsNone {
		t.Errorf("autonomous hint frequency = %q, want %q", cfg.Hints.Frequency, HintsNone)
	}
	if cfg.TaskComplexity.Level != "expert" {
		t.Errorf("autonomous complexity = %q, want expert", cfg.TaskComplexity.Level)
	}
}

func TestBaselineForLevel_EveryLevelCovered(t *testing.T) {
	for lvl := ccis.LevelNovice; lvl <= ccis.LevelAutonomous; lvl++ {
		if _, ok := BaselineForLevel(lvl); !ok {
			t.Errorf("level %d has no baseline", lvl)
		}
	}
	if _, ok := BaselineForLevel(ccis.Level(9)); ok {
		t.Errorf("unknown level returned a baseline")
	}
}

func TestBaselineForLevel_ReturnsCopy(t *testing.T) {
	cfg, _ := BaselineForLevel(ccis.LevelNovice)
	cfg.Hints.Enabled = false

	again, _ := BaselineForLevel(ccis.LevelNovice)
	if !again.Hints.Enabled {
		t.Fatalf("mutating a returned baseline leaked into the table")
	}
}
