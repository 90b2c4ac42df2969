package scaffolding

import (
	"testing"

	"github.com/yungbote/ccis-backend/internal/ccis"
	"github.com/yungbote/ccis-backend/internal/gaming"
)

func TestAdjustForGaming_CriticalAlwaysDisablesHints(t *testing.T) {
	// Every baseline, hints enabled or not, must come out locked down.
	for lvl := ccis.LevelNovice; lvl <= ccis.LevelAutonomous; lvl++ {
		cfg, _ := BaselineForLevel(lvl)
		adj := AdjustForGaming(cfg, gaming.AnalysisResult{RiskLevel: gaming.RiskCritical})
		if adj.Config.Hints.Enabled {
			t.Errorf("level %d: critical risk left hints enabled", lvl)
		}
		if adj.Config.Hints.Frequency != HintsNone {
			t.Errorf("level %d: hint frequency = %q, want %q", lvl, adj.Config.Hints.Frequency, HintsNone)
		}
		if adj.Config.TaskComplexity.Level != "expert" {
			t.Errorf("level %d: complexity = %q, want expert", lvl, adj.Config.TaskComplexity.Level)
		}
		if adj.Config.TimeManagement.Pressure != "high" || adj.Config.TimeManagement.ExtensionsAllowed {
			t.Errorf("level %d: time policy = %+v, want high pressure without extensions", lvl, adj.Config.TimeManagement)
		}
	}
}

func TestAdjustForGaming_HighRestrictsHints(t *testing.T) {
	cfg, _ := BaselineForLevel(ccis.LevelNovice)
	adj := AdjustForGaming(cfg, gaming.AnalysisResult{RiskLevel: gaming.RiskHigh})
	if adj.Config.Hints.Frequency != HintsMinimal || adj.Config.Hints.Quality != "minimal" {
		t.Errorf("high risk hint policy = %+v, want minimal frequency and quality", adj.Config.Hints)
	}
	if !adj.Config.Hints.Enabled {
		t.Errorf("high risk should restrict hints, not remove them")
	}
	if adj.Config.TaskComplexity.Adaptive {
		t.Errorf("high risk left adaptive difficulty on")
	}
}

func TestAdjustForGaming_MediumCapsGenerousHints(t *testing.T) {
	cfg, _ := BaselineForLevel(ccis.LevelNovice) // unlimited hints
	adj := AdjustForGaming(cfg, gaming.AnalysisResult{RiskLevel: gaming.RiskMedium})
	if adj.Config.Hints.Frequency != HintsOnRequest {
		t.Errorf("medium risk hint frequency = %q, want %q", adj.Config.Hints.Frequency, HintsOnRequest)
	}

	// Already-restrictive hints stay put.
	cfg, _ = BaselineForLevel(ccis.LevelSelfDirected) // on_request
	adj = AdjustForGaming(cfg, gaming.AnalysisResult{RiskLevel: gaming.RiskMedium})
	if adj.Config.Hints.Frequency != HintsOnRequest {
		t.Errorf("medium risk tightened an already-restricted hint policy to %q", adj.Config.Hints.Frequency)
	}
}

func TestAdjustForGaming_LowAndNoneLeaveConfigUntouched(t *testing.T) {
	for _, risk := range []gaming.RiskLevel{gaming.RiskNone, gaming.RiskLow} {
		cfg, _ := BaselineForLevel(ccis.LevelGuided)
		adj := AdjustForGaming(cfg, gaming.AnalysisResult{RiskLevel: risk})
		if adj.Config != cfg {
			t.Errorf("risk %s modified the configuration", risk)
		}
		if adj.Changed {
			t.Errorf("risk %s reported a change", risk)
		}
	}
}

func TestAdjustForGaming_StampsMonitoringAndRollback(t *testing.T) {
	cfg, _ := BaselineForLevel(ccis.LevelGuided)
	for _, risk := range []gaming.RiskLevel{gaming.RiskNone, gaming.RiskCritical} {
		adj := AdjustForGaming(cfg, gaming.AnalysisResult{RiskLevel: risk})
		if len(adj.Monitoring) == 0 {
			t.Errorf("risk %s: no monitoring metrics stamped", risk)
		}
		if len(adj.RollbackCriteria) == 0 {
			t.Errorf("risk %s: no rollback criteria stamped", risk)
		}
		if adj.AdjustedAt.IsZero() {
			t.Errorf("risk %s: AdjustedAt not stamped", risk)
		}
	}
}
