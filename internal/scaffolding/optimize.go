package scaffolding

import (
	"fmt"
	"math"
	"time"

	"github.com/yungbote/ccis-backend/internal/ccis"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
)

// Trend names the direction of recent performance.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Performance is the snapshot of a learner's current state driving an
// adjustment decision. All fractional fields are in [0,1].
type Performance struct {
	CurrentLevel     ccis.Level `json:"current_level"`
	FrustrationLevel float64    `json:"frustration_level"`
	ConfidenceLevel  float64    `json:"confidence_level"`
	EngagementLevel  float64    `json:"engagement_level"`
	LearningVelocity float64    `json:"learning_velocity"`
	Trend            Trend      `json:"trend"`

	TransferSuccessRate float64 `json:"transfer_success_rate"`
	ErrorRecoverySpeed  float64 `json:"error_recovery_speed"`
	HelpSeekingQuality  float64 `json:"help_seeking_quality"`
}

func (p Performance) Validate() error {
	if !p.CurrentLevel.Valid() {
		return fmt.Errorf("%w: ccis level %d outside 1..4", pkgerrors.ErrInvalidArgument, p.CurrentLevel)
	}
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"frustration_level", p.FrustrationLevel},
		{"confidence_level", p.ConfidenceLevel},
		{"engagement_level", p.EngagementLevel},
		{"learning_velocity", p.LearningVelocity},
		{"transfer_success_rate", p.TransferSuccessRate},
		{"error_recovery_speed", p.ErrorRecoverySpeed},
		{"help_seeking_quality", p.HelpSeekingQuality},
	} {
		if f.val < 0 || f.val > 1 || math.IsNaN(f.val) {
			return fmt.Errorf("%w: %s=%v outside [0,1]", pkgerrors.ErrInvalidArgument, f.name, f.val)
		}
	}
	return nil
}

type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityImmediate Priority = "immediate"
)

// PredictedImpact is a fixed illustrative estimate, not a model output. The
// percentages do not derive from the configuration delta.
type PredictedImpact struct {
	LearningVelocity     float64 `json:"learning_velocity"`
	CompetencyGrowth     float64 `json:"competency_growth"`
	Engagement           float64 `json:"engagement"`
	FrustrationReduction float64 `json:"frustration_reduction"`
}

var defaultPredictedImpact = PredictedImpact{
	LearningVelocity:     0.15,
	CompetencyGrowth:     0.20,
	Engagement:           0.10,
	FrustrationReduction: 0.25,
}

// OptimizationResult is the outcome of one scaffolding adjustment request.
type OptimizationResult struct {
	Config               Config          `json:"config"`
	PredictedImpact      PredictedImpact `json:"predicted_impact"`
	CulturalSensitivity  float64         `json:"cultural_sensitivity"`
	AdaptationConfidence float64         `json:"adaptation_confidence"`
	Priority             Priority        `json:"priority"`
	AppliedAdjustments   []string        `json:"applied_adjustments,omitempty"`
	ComputedAt           time.Time       `json:"computed_at"`
}

// Performance-override thresholds.
const (
	frustrationOverrideMin = 0.7
	confidenceOverrideMax  = 0.4
	engagementOverrideMax  = 0.5

	frustrationImmediateMin = 0.8
	engagementImmediateMax  = 0.3
	velocityMediumMax       = 0.5
)

// CalculateOptimal runs the adjustment pipeline: canonical baseline, then
// cultural adaptation, then performance overrides. Later stages win on
// conflicting fields. prev is informational; the pipeline always restarts
// from the baseline so stale adjustments never accumulate.
func CalculateOptimal(perf Performance, culture CulturalContext, prev *Config) (OptimizationResult, error) {
	if err := perf.Validate(); err != nil {
		return OptimizationResult{}, err
	}

	cfg, ok := BaselineForLevel(perf.CurrentLevel)
	if !ok {
		return OptimizationResult{}, fmt.Errorf("%w: no baseline for level %d", pkgerrors.ErrBusinessRule, perf.CurrentLevel)
	}

	cfg, culturalApplied, err := applyCulturalAdaptation(cfg, culture)
	if err != nil {
		return OptimizationResult{}, err
	}

	cfg, perfApplied := applyPerformanceOverrides(cfg, perf)
	applied := append(culturalApplied, perfApplied...)
	if prev != nil && *prev != cfg {
		applied = append(applied, "configuration_changed")
	}

	return OptimizationResult{
		Config:               cfg,
		PredictedImpact:      defaultPredictedImpact,
		CulturalSensitivity:  culturalSensitivity(culture, len(culturalApplied)),
		AdaptationConfidence: adaptationConfidence(perf, len(applied)),
		Priority:             implementationPriority(perf),
		AppliedAdjustments:   applied,
		ComputedAt:           time.Now().UTC(),
	}, nil
}

// applyPerformanceOverrides applies the three indicator-driven overrides in a
// fixed order. Each override strictly replaces the fields it names.
func applyPerformanceOverrides(cfg Config, perf Performance) (Config, []string) {
	var applied []string

	if perf.FrustrationLevel > frustrationOverrideMin {
		cfg.Hints = HintPolicy{Enabled: true, Frequency: HintsUnlimited, Quality: "detailed", Timing: "immediate"}
		cfg.TimeManagement.Pressure = "none"
		cfg.TimeManagement.ExtensionsAllowed = true
		cfg.Feedback.ReinforcementTone = "positive"
		applied = append(applied, "frustration_relief")
	}

	if perf.ConfidenceLevel < confidenceOverrideMax {
		cfg.Feedback.Frequency = "continuous"
		cfg.Feedback.Detail = "comprehensive"
		cfg.TaskComplexity.Level = "basic"
		applied = append(applied, "confidence_support")
	}

	if perf.EngagementLevel < engagementOverrideMax {
		cfg.TaskComplexity.Adaptive = true
		cfg.TimeManagement.SelfPaced = true
		applied = append(applied, "engagement_recovery")
	}

	return cfg, applied
}

// culturalSensitivity scores how strongly the configuration was shaped by the
// learner's region: a base for having a known region plus credit per nudge.
func culturalSensitivity(culture CulturalContext, nudges int) float64 {
	base := 0.5
	if culture.Region == RegionIndia || culture.Region == RegionUAE {
		base = 0.6
	}
	return math.Min(1, base+0.1*float64(nudges))
}

// adaptationConfidence grows with the number of concrete adjustments and
// shrinks when the snapshot is contradictory (high frustration with high
// engagement reads as noisy input).
func adaptationConfidence(perf Performance, adjustments int) float64 {
	conf := 0.5 + 0.08*float64(adjustments)
	if perf.FrustrationLevel > 0.7 && perf.EngagementLevel > 0.7 {
		conf -= 0.15
	}
	return math.Max(0.2, math.Min(0.95, conf))
}

func implementationPriority(perf Performance) Priority {
	switch {
	case perf.FrustrationLevel > frustrationImmediateMin || perf.EngagementLevel < engagementImmediateMax:
		return PriorityImmediate
	case perf.ConfidenceLevel < confidenceOverrideMax || perf.Trend == TrendDeclining:
		return PriorityHigh
	case perf.LearningVelocity < velocityMediumMax:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
