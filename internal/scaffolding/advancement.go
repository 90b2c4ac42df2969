package scaffolding

import (
	"fmt"
	"math"
	"time"

	"github.com/yungbote/ccis-backend/internal/ccis"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
)

// Readiness component weights. Transfer dominates because applying a skill in
// a new context is the strongest advancement predictor the signals carry.
const (
	readinessTransferWeight   = 0.30
	readinessConfidenceWeight = 0.20
	readinessVelocityWeight   = 0.20
	readinessRecoveryWeight   = 0.15
	readinessEngagementWeight = 0.15

	readinessChallengeMin = 0.8
	readinessBalancedMin  = 0.6
)

// Milestone is one step of a projected path toward a target level.
type Milestone struct {
	Level              ccis.Level    `json:"level"`
	EstimatedTime      time.Duration `json:"estimated_time"`
	SuccessProbability float64       `json:"success_probability"`
}

// Trajectory projects how long reaching a target level should take and what
// helps or threatens the climb.
type Trajectory struct {
	CurrentLevel              ccis.Level    `json:"current_level"`
	TargetLevel               ccis.Level    `json:"target_level"`
	EstimatedTimeToAchieve    time.Duration `json:"estimated_time_to_achieve"`
	Milestones                []Milestone   `json:"milestones"`
	RiskFactors               []string      `json:"risk_factors,omitempty"`
	AccelerationOpportunities []string      `json:"acceleration_opportunities,omitempty"`
}

// AdvancementResult bundles the readiness decision with the reshaped
// configuration and the trajectory projection.
type AdvancementResult struct {
	Readiness  float64    `json:"readiness"`
	Band       string     `json:"band"` // ready_for_challenge | balanced | needs_support
	Config     Config     `json:"config"`
	Trajectory Trajectory `json:"trajectory"`
	ComputedAt time.Time  `json:"computed_at"`
}

// AdvancementReadiness is the weighted readiness score in [0,1].
func AdvancementReadiness(perf Performance) float64 {
	score := perf.TransferSuccessRate*readinessTransferWeight +
		perf.ConfidenceLevel*readinessConfidenceWeight +
		perf.LearningVelocity*readinessVelocityWeight +
		perf.ErrorRecoverySpeed*readinessRecoveryWeight +
		perf.EngagementLevel*readinessEngagementWeight
	return math.Max(0, math.Min(1, score))
}

// OptimizeForAdvancement reshapes cfg according to the learner's readiness
// for the target level. High readiness trims support to create challenge,
// low readiness adds it back; the middle band leaves cfg alone.
func OptimizeForAdvancement(perf Performance, cfg Config, target ccis.Level) (AdvancementResult, error) {
	if err := perf.Validate(); err != nil {
		return AdvancementResult{}, err
	}
	if !target.Valid() {
		return AdvancementResult{}, fmt.Errorf("%w: target level %d outside 1..4", pkgerrors.ErrInvalidArgument, target)
	}
	if target <= perf.CurrentLevel {
		return AdvancementResult{}, fmt.Errorf("%w: target level %d not above current level %d", pkgerrors.ErrBusinessRule, target, perf.CurrentLevel)
	}

	readiness := AdvancementReadiness(perf)
	out := cfg
	var band string
	switch {
	case readiness > readinessChallengeMin:
		band = "ready_for_challenge"
		out.Hints.Frequency = reduceHintFrequency(out.Hints.Frequency)
		if out.Hints.Frequency == HintsNone {
			out.Hints.Enabled = false
		}
		out.TaskComplexity.MultiStep = true
		out.Feedback.Frequency = "periodic"
		out.TimeManagement.Pressure = raiseTimePressure(out.TimeManagement.Pressure)
	case readiness >= readinessBalancedMin:
		band = "balanced"
	default:
		band = "needs_support"
		out.Hints.Enabled = true
		out.Hints.Frequency = raiseHintFrequency(out.Hints.Frequency)
		out.Feedback.Detail = "detailed"
		out.TimeManagement.ExtensionsAllowed = true
	}

	return AdvancementResult{
		Readiness:  readiness,
		Band:       band,
		Config:     out,
		Trajectory: CalculateTrajectory(perf, target),
		ComputedAt: time.Now().UTC(),
	}, nil
}

const hoursPerLevel = 2 * time.Hour

// CalculateTrajectory projects the climb from the current level to target.
// Time scales inversely with learning velocity, floored at 0.5 so a stalled
// learner still gets a finite estimate.
func CalculateTrajectory(perf Performance, target ccis.Level) Trajectory {
	diff := int(target) - int(perf.CurrentLevel)
	if diff < 0 {
		diff = 0
	}
	velocity := math.Max(0.5, perf.LearningVelocity)
	total := time.Duration(float64(diff) * float64(hoursPerLevel) / velocity)

	milestones := make([]Milestone, 0, diff)
	for step := 0; step < diff; step++ {
		prob := 1 - 0.2*float64(step)
		if prob < 0.3 {
			prob = 0.3
		}
		milestones = append(milestones, Milestone{
			Level:              perf.CurrentLevel + ccis.Level(step+1),
			EstimatedTime:      total / time.Duration(max(diff, 1)),
			SuccessProbability: prob,
		})
	}

	return Trajectory{
		CurrentLevel:              perf.CurrentLevel,
		TargetLevel:               target,
		EstimatedTimeToAchieve:    total,
		Milestones:                milestones,
		RiskFactors:               riskFactors(perf),
		AccelerationOpportunities: accelerationOpportunities(perf),
	}
}

func riskFactors(perf Performance) []string {
	var out []string
	if perf.FrustrationLevel > 0.6 {
		out = append(out, "elevated frustration may stall progress")
	}
	if perf.ConfidenceLevel < 0.4 {
		out = append(out, "low confidence undermines independent work")
	}
	if perf.EngagementLevel < 0.5 {
		out = append(out, "disengagement risks session abandonment")
	}
	if perf.LearningVelocity < 0.3 {
		out = append(out, "slow learning velocity extends the timeline")
	}
	return out
}

func accelerationOpportunities(perf Performance) []string {
	var out []string
	if perf.TransferSuccessRate > 0.7 {
		out = append(out, "strong transfer supports cross-context tasks")
	}
	if perf.HelpSeekingQuality > 0.7 {
		out = append(out, "strategic help-seeking enables harder material sooner")
	}
	if perf.ErrorRecoverySpeed > 0.7 {
		out = append(out, "fast error recovery tolerates higher difficulty")
	}
	if perf.LearningVelocity > 0.8 {
		out = append(out, "high velocity supports a compressed milestone schedule")
	}
	return out
}

func reduceHintFrequency(f HintFrequency) HintFrequency {
	switch f {
	case HintsUnlimited:
		return HintsFrequent
	case HintsFrequent:
		return HintsOnRequest
	case HintsOnRequest:
		return HintsMinimal
	default:
		return HintsNone
	}
}

func raiseHintFrequency(f HintFrequency) HintFrequency {
	switch f {
	case HintsNone:
		return HintsMinimal
	case HintsMinimal:
		return HintsOnRequest
	case HintsOnRequest:
		return HintsFrequent
	default:
		return HintsUnlimited
	}
}

func raiseTimePressure(p string) string {
	switch p {
	case "none":
		return "low"
	case "low":
		return "moderate"
	default:
		return "high"
	}
}
