package scaffolding

import (
	"errors"
	"testing"

	"github.com/yungbote/ccis-backend/internal/ccis"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
)

func healthyPerformance(level ccis.Level) Performance {
	return Performance{
		CurrentLevel:        level,
		FrustrationLevel:    0.2,
		ConfidenceLevel:     0.8,
		EngagementLevel:     0.8,
		LearningVelocity:    0.7,
		Trend:               TrendStable,
		TransferSuccessRate: 0.7,
		ErrorRecoverySpeed:  0.7,
		HelpSeekingQuality:  0.7,
	}
}

func TestCalculateOptimal_HealthyLearnerKeepsBaseline(t *testing.T) {
	res, err := CalculateOptimal(healthyPerformance(ccis.LevelGuided), CulturalContext{Region: RegionIndia}, nil)
	if err != nil {
		t.Fatalf("CalculateOptimal: %v", err)
	}
	base, _ := BaselineForLevel(ccis.LevelGuided)
	if res.Config.Hints != base.Hints {
		t.Errorf("hint policy = %+v, want baseline %+v", res.Config.Hints, base.Hints)
	}
	if res.Priority != PriorityLow {
		t.Errorf("priority = %q, want %q", res.Priority, PriorityLow)
	}
}

func TestCalculateOptimal_CulturalNudges(t *testing.T) {
	tests := []struct {
		region        Region
		authority     string
		collaboration string
		communication string
	}{
		// INDIA clears authority and collaboration thresholds, not directness.
		{RegionIndia, "hierarchical", "group", "contextual"},
		{RegionUAE, "hierarchical", "group", "contextual"},
		// GLOBAL only clears communication directness.
		{RegionGlobal, "facilitated", "mixed", "direct"},
	}
	for _, tc := range tests {
		res, err := CalculateOptimal(healthyPerformance(ccis.LevelNovice), CulturalContext{Region: tc.region}, nil)
		if err != nil {
			t.Fatalf("region %s: %v", tc.region, err)
		}
		c := res.Config.Cultural
		if c.AuthorityStructure != tc.authority {
			t.Errorf("region %s: authority = %q, want %q", tc.region, c.AuthorityStructure, tc.authority)
		}
		if c.CollaborationEmphasis != tc.collaboration {
			t.Errorf("region %s: collaboration = %q, want %q", tc.region, c.CollaborationEmphasis, tc.collaboration)
		}
		if c.CommunicationStyle != tc.communication {
			t.Errorf("region %s: communication = %q, want %q", tc.region, c.CommunicationStyle, tc.communication)
		}
	}
}

func TestCalculateOptimal_UnknownRegionFallsBackToGlobal(t *testing.T) {
	res, err := CalculateOptimal(healthyPerformance(ccis.LevelNovice), CulturalContext{Region: "ATLANTIS"}, nil)
	if err != nil {
		t.Fatalf("CalculateOptimal: %v", err)
	}
	if res.Config.Cultural.CommunicationStyle != "direct" {
		t.Errorf("unknown region did not fall back to GLOBAL weights")
	}
}

func TestCalculateOptimal_FrustrationOverride(t *testing.T) {
	perf := healthyPerformance(ccis.LevelAutonomous)
	perf.FrustrationLevel = 0.9
	perf.EngagementLevel = 0.4

	res, err := CalculateOptimal(perf, CulturalContext{Region: RegionGlobal}, nil)
	if err != nil {
		t.Fatalf("CalculateOptimal: %v", err)
	}
	// Frustration relief wins over the level-4 baseline's hint lockout.
	if !res.Config.Hints.Enabled || res.Config.Hints.Frequency != HintsUnlimited {
		t.Errorf("frustrated learner got hints %+v, want enabled unlimited", res.Config.Hints)
	}
	if res.Config.TimeManagement.Pressure != "none" {
		t.Errorf("time pressure = %q, want none", res.Config.TimeManagement.Pressure)
	}
	if res.Priority != PriorityImmediate {
		t.Errorf("priority = %q, want %q", res.Priority, PriorityImmediate)
	}
}

func TestCalculateOptimal_ConfidenceAndEngagementOverrides(t *testing.T) {
	perf := healthyPerformance(ccis.LevelSelfDirected)
	perf.ConfidenceLevel = 0.3
	perf.EngagementLevel = 0.45

	res, err := CalculateOptimal(perf, CulturalContext{Region: RegionGlobal}, nil)
	if err != nil {
		t.Fatalf("CalculateOptimal: %v", err)
	}
	if res.Config.Feedback.Frequency != "continuous" || res.Config.TaskComplexity.Level != "basic" {
		t.Errorf("confidence support not applied: feedback=%+v complexity=%+v", res.Config.Feedback, res.Config.TaskComplexity)
	}
	if !res.Config.TimeManagement.SelfPaced {
		t.Errorf("engagement recovery did not restore self-pacing")
	}
	if res.Priority != PriorityHigh {
		t.Errorf("priority = %q, want %q", res.Priority, PriorityHigh)
	}
}

func TestCalculateOptimal_PreviousConfigMarksChange(t *testing.T) {
	prev := Config{}
	res, err := CalculateOptimal(healthyPerformance(ccis.LevelGuided), CulturalContext{Region: RegionGlobal}, &prev)
	if err != nil {
		t.Fatalf("CalculateOptimal: %v", err)
	}
	found := false
	for _, a := range res.AppliedAdjustments {
		if a == "configuration_changed" {
			found = true
		}
	}
	if !found {
		t.Errorf("applied adjustments %v missing configuration_changed", res.AppliedAdjustments)
	}
}

func TestCalculateOptimal_RejectsInvalidSnapshot(t *testing.T) {
	bad := healthyPerformance(ccis.LevelGuided)
	bad.FrustrationLevel = 1.4
	if _, err := CalculateOptimal(bad, CulturalContext{Region: RegionGlobal}, nil); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}

	bad = healthyPerformance(ccis.Level(0))
	if _, err := CalculateOptimal(bad, CulturalContext{Region: RegionGlobal}, nil); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument for bad level", err)
	}
}

func TestCalculateOptimal_BoundsOnDerivedScores(t *testing.T) {
	res, err := CalculateOptimal(healthyPerformance(ccis.LevelNovice), CulturalContext{Region: RegionIndia}, nil)
	if err != nil {
		t.Fatalf("CalculateOptimal: %v", err)
	}
	if res.CulturalSensitivity < 0 || res.CulturalSensitivity > 1 {
		t.Errorf("cultural sensitivity %v outside [0,1]", res.CulturalSensitivity)
	}
	if res.AdaptationConfidence < 0 || res.AdaptationConfidence > 1 {
		t.Errorf("adaptation confidence %v outside [0,1]", res.AdaptationConfidence)
	}
	if res.ComputedAt.IsZero() {
		t.Errorf("ComputedAt not stamped")
	}
}
