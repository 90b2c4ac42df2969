package ccis

import (
	"fmt"
	"math"
	"sort"
	"time"

	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
)

// signalWeights is the fixed weighting of the seven behavioral signals. The
// weights sum to exactly 1.0, so the raw score stays in [0,1] for valid input.
var signalWeights = []struct {
	Name   string
	Weight float64
	Value  func(BehavioralSignals) float64
}{
	{"hint_request_frequency", 0.35, func(s BehavioralSignals) float64 { return s.HintRequestFrequency }},
	{"error_recovery_speed", 0.25, func(s BehavioralSignals) float64 { return s.ErrorRecoverySpeed }},
	{"transfer_success_rate", 0.20, func(s BehavioralSignals) float64 { return s.TransferSuccessRate }},
	{"metacognitive_accuracy", 0.10, func(s BehavioralSignals) float64 { return s.MetacognitiveAccuracy }},
	{"task_completion_efficiency", 0.05, func(s BehavioralSignals) float64 { return s.TaskCompletionEfficiency }},
	{"help_seeking_quality", 0.03, func(s BehavioralSignals) float64 { return s.HelpSeekingQuality }},
	{"self_assessment_alignment", 0.02, func(s BehavioralSignals) float64 { return s.SelfAssessmentAlignment }},
}

// Confidence component weights: amount of evidence, assessment duration, and
// cross-signal consistency.
const (
	confidenceEvidenceWeight    = 0.4
	confidenceDurationWeight    = 0.3
	confidenceConsistencyWeight = 0.3

	// Full evidence credit at 10 tasks / 60 minutes.
	evidenceFullTasks   = 10.0
	durationFullMinutes = 60.0
)

// SignalContribution is one row of the per-signal score breakdown.
type SignalContribution struct {
	Signal       string  `json:"signal"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Result is the outcome of scoring a single competency's signals.
type Result struct {
	Level        Level                `json:"level"`
	RawScore     float64              `json:"raw_score"`
	Confidence   float64              `json:"confidence"` // percentage 0..100
	Breakdown    []SignalContribution `json:"breakdown"`
	Gaming       GamingCheck          `json:"gaming"`
	Intervention InterventionCheck    `json:"intervention"`
	CalculatedAt time.Time            `json:"calculated_at"`
}

// Calculate maps raw behavioral evidence to a classified CCIS level with a
// reliability estimate, plus the embedded gaming and intervention flags. Pure
// and total over valid input; invalid input fails, never gets clamped.
func Calculate(signals BehavioralSignals) (Result, error) {
	if err := signals.Validate(); err != nil {
		return Result{}, err
	}

	breakdown := make([]SignalContribution, 0, len(signalWeights))
	var raw float64
	for _, sw := range signalWeights {
		v := sw.Value(signals)
		c := v * sw.Weight
		raw += c
		breakdown = append(breakdown, SignalContribution{
			Signal:       sw.Name,
			Value:        v,
			Weight:       sw.Weight,
			Contribution: c,
		})
	}

	return Result{
		Level:        LevelFromScore(raw),
		RawScore:     raw,
		Confidence:   confidence(signals),
		Breakdown:    breakdown,
		Gaming:       CheckGaming(signals),
		Intervention: CheckIntervention(signals),
		CalculatedAt: time.Now().UTC(),
	}, nil
}

// confidence estimates how reliable the level determination is, as a rounded
// percentage. Zero evidence yields low but non-negative confidence.
func confidence(signals BehavioralSignals) float64 {
	evidence := math.Min(1, float64(signals.TaskCount)/evidenceFullTasks)
	duration := math.Min(1, signals.AssessmentDuration/durationFullMinutes)
	consistency := math.Max(0, 1-Variance(signals.Vector()))
	score := confidenceEvidenceWeight*evidence +
		confidenceDurationWeight*duration +
		confidenceConsistencyWeight*consistency
	return math.Round(score * 100)
}

// CompetencySignals pairs one competency with its observed signals, for
// overall aggregation.
type CompetencySignals struct {
	Competency CompetencyType    `json:"competency"`
	Signals    BehavioralSignals `json:"signals"`
}

// CompetencyResult is one competency's scored entry inside an overall result.
type CompetencyResult struct {
	Competency     CompetencyType `json:"competency"`
	Result         Result         `json:"result"`
	IndustryWeight float64        `json:"industry_weight"`
}

// OverallResult aggregates per-competency scores into a career-readiness view.
type OverallResult struct {
	OverallScore        float64            `json:"overall_score"`
	OverallConfidence   float64            `json:"overall_confidence"`
	ReadinessPercentage int                `json:"readiness_percentage"`
	PerCompetency       []CompetencyResult `json:"per_competency"`
	Strongest           []CompetencyType   `json:"strongest_competencies"`
	DevelopmentAreas    []CompetencyType   `json:"development_areas"`
	CalculatedAt        time.Time          `json:"calculated_at"`
}

// CalculateOverall scores each competency individually and aggregates by the
// fixed industry weights. Fails on an empty input list; a default readiness
// result would be indistinguishable from a real one downstream.
func CalculateOverall(inputs []CompetencySignals) (OverallResult, error) {
	if len(inputs) == 0 {
		return OverallResult{}, fmt.Errorf("%w: empty competency list", pkgerrors.ErrInvalidArgument)
	}

	per := make([]CompetencyResult, 0, len(inputs))
	var weightSum, scoreSum, confSum float64
	for _, in := range inputs {
		res, err := Calculate(in.Signals)
		if err != nil {
			return OverallResult{}, fmt.Errorf("competency %s: %w", in.Competency, err)
		}
		w := IndustryWeight(in.Competency)
		per = append(per, CompetencyResult{
			Competency:     in.Competency,
			Result:         res,
			IndustryWeight: w,
		})
		weightSum += w
		scoreSum += res.RawScore * w
		confSum += res.Confidence * w
	}

	overall := scoreSum / weightSum
	overallConf := confSum / weightSum

	// Rank by raw score, ties broken by stable input order.
	order := make([]int, len(per))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return per[order[a]].Result.RawScore > per[order[b]].Result.RawScore
	})

	topN := func(idx []int, n int) []CompetencyType {
		if n > len(idx) {
			n = len(idx)
		}
		out := make([]CompetencyType, 0, n)
		for _, i := range idx[:n] {
			out = append(out, per[i].Competency)
		}
		return out
	}
	asc := make([]int, len(per))
	for i := range asc {
		asc[i] = i
	}
	sort.SliceStable(asc, func(a, b int) bool {
		return per[asc[a]].Result.RawScore < per[asc[b]].Result.RawScore
	})

	return OverallResult{
		OverallScore:        overall,
		OverallConfidence:   overallConf,
		ReadinessPercentage: int(math.Round(overall * 100)),
		PerCompetency:       per,
		Strongest:           topN(order, 2),
		DevelopmentAreas:    topN(asc, 2),
		CalculatedAt:        time.Now().UTC(),
	}, nil
}
