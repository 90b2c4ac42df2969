package gaming

import (
	"fmt"
	"math"
	"time"

	"github.com/yungbote/ccis-backend/internal/ccis"
)

// Detector weights for the overall risk score. They sum to 0.9, so a critical
// verdict needs near-certain findings from every detector at once.
const (
	weightVariance    = 0.25
	weightTiming      = 0.20
	weightPerformance = 0.20
	weightHistorical  = 0.15
	weightMetadata    = 0.10
)

// Risk thresholds on the weighted overall score.
const (
	riskCriticalMin = 0.8
	riskHighMin     = 0.6
	riskMediumMin   = 0.4
	riskLowMin      = 0.2
)

type detection struct {
	anomalous   bool
	confidence  float64
	description string
	evidence    []string
}

// AnalyzeSession combines five independent detectors into a single weighted
// risk verdict. Purely computational; invalidation, flagging and persistence
// are the caller's responsibility.
func AnalyzeSession(input SessionInput) (AnalysisResult, error) {
	if err := input.Signals.Validate(); err != nil {
		return AnalysisResult{}, err
	}

	checks := []struct {
		typ    PatternType
		weight float64
		run    func(SessionInput) detection
	}{
		{PatternVarianceAnomaly, weightVariance, detectVarianceAnomaly},
		{PatternTimingIrregularity, weightTiming, detectTimingIrregularity},
		{PatternPerformanceAnomaly, weightPerformance, detectPerformanceAnomaly},
		{PatternHistoricalInconsistency, weightHistorical, detectHistoricalInconsistency},
		{PatternMetadataAnomaly, weightMetadata, detectMetadataAnomaly},
	}

	var score float64
	patterns := make([]DetectedPattern, 0, len(checks))
	for _, c := range checks {
		d := c.run(input)
		if !d.anomalous {
			continue
		}
		score += c.weight * d.confidence
		patterns = append(patterns, DetectedPattern{
			Type:        c.typ,
			Confidence:  d.confidence,
			Description: d.description,
			Evidence:    d.evidence,
		})
	}

	level := riskLevelForScore(score)
	return AnalysisResult{
		RiskLevel:            level,
		OverallRiskScore:     score,
		Patterns:             patterns,
		RecommendedAction:    actionForRisk(level),
		InterventionPriority: priorityForRisk(level),
		HumanReviewRequired:  level == RiskHigh || level == RiskCritical,
		AnalyzedAt:           time.Now().UTC(),
	}, nil
}

func riskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= riskCriticalMin:
		return RiskCritical
	case score >= riskHighMin:
		return RiskHigh
	case score >= riskMediumMin:
		return RiskMedium
	case score >= riskLowMin:
		return RiskLow
	default:
		return RiskNone
	}
}

func actionForRisk(level RiskLevel) Action {
	switch level {
	case RiskCritical:
		return ActionInvalidateSession
	case RiskHigh:
		return ActionFlagForReview
	case RiskMedium:
		return ActionExtendAssessment
	case RiskLow:
		return ActionMonitor
	default:
		return ActionNone
	}
}

func priorityForRisk(level RiskLevel) Priority {
	switch level {
	case RiskCritical:
		return PriorityImmediate
	case RiskHigh:
		return PriorityHigh
	case RiskMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Variance detector thresholds.
const (
	varianceTooLow   = 0.05
	varianceTooHigh  = 0.4
	perfectSignalMin = 0.98
	perfectSignalCt  = 3
)

func detectVarianceAnomaly(input SessionInput) detection {
	vec := input.Signals.Vector()
	v := ccis.Variance(vec)

	perfect := 0
	for _, s := range vec {
		if s > perfectSignalMin {
			perfect++
		}
	}

	switch {
	case perfect >= perfectSignalCt:
		// Confidence grows with every additional near-perfect signal.
		return detection{
			anomalous:   true,
			confidence:  math.Min(1, 0.9+0.02*float64(perfect-perfectSignalCt)),
			description: "signal profile is implausibly perfect",
			evidence:    []string{fmt.Sprintf("%d signals above %.2f", perfect, perfectSignalMin)},
		}
	case v < varianceTooLow:
		return detection{
			anomalous:   true,
			confidence:  0.7,
			description: "signals are suspiciously consistent",
			evidence:    []string{fmt.Sprintf("signal variance %.4f below %.2f", v, varianceTooLow)},
		}
	case v > varianceTooHigh:
		return detection{
			anomalous:   true,
			confidence:  0.6,
			description: "signals are suspiciously erratic",
			evidence:    []string{fmt.Sprintf("signal variance %.4f above %.2f", v, varianceTooHigh)},
		}
	}
	return detection{}
}

// Timing detector thresholds.
const (
	fastTaskMaxSeconds = 10.0
	fastTaskMaxShare   = 0.3
	slowTaskMinSeconds = 1800.0
	timingCVMin        = 0.15
)

func detectTimingIrregularity(input SessionInput) detection {
	timings := input.TaskTimings
	if len(timings) == 0 {
		return detection{}
	}

	fast := 0
	var sum float64
	for _, t := range timings {
		if t < fastTaskMaxSeconds {
			fast++
		}
		if t > slowTaskMinSeconds {
			return detection{
				anomalous:   true,
				confidence:  0.5,
				description: "task duration far outside plausible range",
				evidence:    []string{fmt.Sprintf("task took %.0fs, above %.0fs ceiling", t, slowTaskMinSeconds)},
			}
		}
		sum += t
	}

	if share := float64(fast) / float64(len(timings)); share > fastTaskMaxShare {
		return detection{
			anomalous:   true,
			confidence:  math.Min(1, 0.5+share),
			description: "too many tasks completed implausibly fast",
			evidence:    []string{fmt.Sprintf("%.0f%% of tasks under %.0fs", share*100, fastTaskMaxSeconds)},
		}
	}

	if len(timings) >= 2 {
		mean := sum / float64(len(timings))
		if mean > 0 {
			cv := math.Sqrt(ccis.Variance(timings)) / mean
			if cv < timingCVMin {
				return detection{
					anomalous:   true,
					confidence:  0.7,
					description: "task timings are mechanically regular",
					evidence:    []string{fmt.Sprintf("timing coefficient of variation %.3f below %.2f", cv, timingCVMin)},
				}
			}
		}
	}
	return detection{}
}

// Performance detector thresholds.
const (
	lowHintAvgMax       = 0.5
	lowHintFreqMax      = 0.02
	highHintAvgMin      = 5.0
	highSuccessRateMin  = 0.9
	errorFreeShareMax   = 0.8
	consistencyScoreMin = 0.9
)

func detectPerformanceAnomaly(input SessionInput) detection {
	sig := input.Signals

	if len(input.HintCounts) > 0 {
		var hintSum float64
		for _, h := range input.HintCounts {
			hintSum += float64(h)
		}
		hintAvg := hintSum / float64(len(input.HintCounts))

		if hintAvg < lowHintAvgMax && sig.HintRequestFrequency < lowHintFreqMax {
			return detection{
				anomalous:   true,
				confidence:  0.75,
				description: "complex tasks completed with essentially no help",
				evidence: []string{
					fmt.Sprintf("average hints per task %.2f", hintAvg),
					fmt.Sprintf("hint request frequency %.3f", sig.HintRequestFrequency),
				},
			}
		}

		if successRate, ok := errorFreeShare(input.ErrorCounts); ok && hintAvg > highHintAvgMin && successRate > highSuccessRateMin {
			return detection{
				anomalous:   true,
				confidence:  0.7,
				description: "heavy hint usage is inconsistent with near-perfect success",
				evidence: []string{
					fmt.Sprintf("average hints per task %.2f", hintAvg),
					fmt.Sprintf("error-free task share %.0f%%", successRate*100),
				},
			}
		}
	}

	if share, ok := errorFreeShare(input.ErrorCounts); ok && share > errorFreeShareMax {
		return detection{
			anomalous:   true,
			confidence:  share,
			description: "error-free task share exceeds plausible ceiling",
			evidence:    []string{fmt.Sprintf("%.0f%% of tasks error-free", share*100)},
		}
	}

	// Pattern repetition, via the simplified four-signal variance proxy.
	if consistency := 1 - ccis.Variance(sig.ConsistencyVector()); consistency > consistencyScoreMin {
		return detection{
			anomalous:   true,
			confidence:  0.65,
			description: "behavioral pattern repeats with no natural variation",
			evidence:    []string{fmt.Sprintf("consistency score %.3f above %.2f", consistency, consistencyScoreMin)},
		}
	}
	return detection{}
}

func errorFreeShare(errorCounts []int) (float64, bool) {
	if len(errorCounts) == 0 {
		return 0, false
	}
	free := 0
	for _, e := range errorCounts {
		if e == 0 {
			free++
		}
	}
	return float64(free) / float64(len(errorCounts)), true
}

// Historical detector thresholds.
const (
	impossibleImprovementMin = 0.3
	sessionSimilarityMax     = 0.95
	similarityWindow         = 3

	// placeholderSessionSimilarity stands in for a real pairwise session
	// comparison, which needs a feature source the engine does not have.
	// It sits below the trigger threshold so the similarity branch never
	// fires until a real metric replaces it.
	placeholderSessionSimilarity = 0.5
)

func detectHistoricalInconsistency(input SessionInput) detection {
	hist := input.History
	if hist == nil {
		return detection{}
	}

	if avg, ok := hist.CompetencyAverages[input.Competency]; ok {
		current := rawScore(input.Signals)
		if current-avg > impossibleImprovementMin {
			return detection{
				anomalous:   true,
				confidence:  math.Min(1, 0.55+(current-avg)),
				description: "improvement over historical average is implausibly large",
				evidence: []string{
					fmt.Sprintf("current score %.2f", current),
					fmt.Sprintf("historical average %.2f", avg),
				},
			}
		}
	}

	recent := 0
	for i := len(hist.Sessions) - 1; i >= 0 && recent < similarityWindow; i-- {
		if hist.Sessions[i].Competency != input.Competency {
			continue
		}
		recent++
		if placeholderSessionSimilarity > sessionSimilarityMax {
			return detection{
				anomalous:   true,
				confidence:  0.8,
				description: "session is near-identical to recent sessions",
				evidence:    []string{fmt.Sprintf("similarity %.2f above %.2f", placeholderSessionSimilarity, sessionSimilarityMax)},
			}
		}
	}
	return detection{}
}

// rawScore mirrors the calculation engine's weighted sum without the
// validation round-trip; callers have already validated.
func rawScore(s ccis.BehavioralSignals) float64 {
	return s.HintRequestFrequency*0.35 +
		s.ErrorRecoverySpeed*0.25 +
		s.TransferSuccessRate*0.20 +
		s.MetacognitiveAccuracy*0.10 +
		s.TaskCompletionEfficiency*0.05 +
		s.HelpSeekingQuality*0.03 +
		s.SelfAssessmentAlignment*0.02
}

// Metadata detector thresholds.
const (
	offHoursStart = 23
	offHoursEnd   = 6

	poorNetworkScoreMin = 0.9
)

func detectMetadataAnomaly(input SessionInput) detection {
	env := input.Environment

	var conf float64
	var evidence []string
	if env.HourOfDay < offHoursEnd || env.HourOfDay > offHoursStart {
		conf += 0.5
		evidence = append(evidence, fmt.Sprintf("hour of day %d", env.HourOfDay))
	}
	if env.NetworkQuality == NetworkPoor {
		if score := rawScore(input.Signals); score > poorNetworkScoreMin {
			conf += 0.6
			evidence = append(evidence, fmt.Sprintf("score %.2f with poor network quality", score))
		}
	}
	if conf == 0 {
		return detection{}
	}
	return detection{
		anomalous:   true,
		confidence:  math.Min(1, conf),
		description: "session metadata is inconsistent with honest use",
		evidence:    evidence,
	}
}
