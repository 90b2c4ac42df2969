package ccis

// Lightweight gaming heuristics embedded in the calculation engine. These are
// per-signal-snapshot checks only; the session-level detectors with timing and
// historical evidence live in the gaming package.

type GamingType string

const (
	GamingNone            GamingType = "none"
	GamingHintAbuse       GamingType = "hint_abuse"
	GamingPerfectPatterns GamingType = "perfect_patterns"
	GamingRapidCompletion GamingType = "rapid_completion"
	GamingLowVariance     GamingType = "low_variance"
)

type GamingAction string

const (
	GamingActionNone              GamingAction = "none"
	GamingActionAdjustScaffolding GamingAction = "adjust_scaffolding"
	GamingActionExtendAssessment  GamingAction = "extend_assessment"
	GamingActionFlagForReview     GamingAction = "flag_for_review"
)

// GamingCheck is the confidence-weighted flag riding along with a CCIS result.
type GamingCheck struct {
	Detected          bool         `json:"detected"`
	Type              GamingType   `json:"type"`
	Confidence        float64      `json:"confidence"`
	RecommendedAction GamingAction `json:"recommended_action"`
}

const (
	hintAbuseFreqMax        = 0.05
	perfectSignalMin        = 0.95
	perfectSignalCount      = 2
	rapidEfficiencyMin      = 0.95
	rapidDurationMaxMinutes = 15.0
	lowVarianceMax          = 0.10

	gamingDetectedMin = 0.5
)

// Rule confidences are fixed per pattern: the sharper the anomaly a rule keys
// on, the higher its confidence. Perfect patterns outrank hint abuse, which
// outranks rapid completion; low variance alone is the weakest evidence.
const (
	hintAbuseConfidence       = 0.85
	perfectPatternsConfidence = 0.90
	rapidCompletionConfidence = 0.80
	lowVarianceConfidence     = 0.60
)

// CheckGaming runs the four independent heuristics and reports the pattern
// with the highest confidence.
func CheckGaming(signals BehavioralSignals) GamingCheck {
	best := GamingCheck{Type: GamingNone, RecommendedAction: GamingActionNone}

	consider := func(t GamingType, conf float64) {
		if conf > best.Confidence {
			best.Type = t
			best.Confidence = conf
		}
	}

	// Hint abuse: near-zero hint usage suggests prior knowledge of answers.
	if signals.HintRequestFrequency < hintAbuseFreqMax {
		consider(GamingHintAbuse, hintAbuseConfidence)
	}

	// Perfect patterns: two or more core signals above 0.95.
	perfect := 0
	for _, v := range []float64{signals.ErrorRecoverySpeed, signals.TransferSuccessRate, signals.MetacognitiveAccuracy} {
		if v > perfectSignalMin {
			perfect++
		}
	}
	if perfect >= perfectSignalCount {
		consider(GamingPerfectPatterns, perfectPatternsConfidence)
	}

	// Rapid completion: near-perfect efficiency inside a short session.
	if signals.TaskCompletionEfficiency > rapidEfficiencyMin && signals.AssessmentDuration < rapidDurationMaxMinutes {
		consider(GamingRapidCompletion, rapidCompletionConfidence)
	}

	// Low variance: unnaturally consistent core signals.
	if Variance(signals.ConsistencyVector()) < lowVarianceMax {
		consider(GamingLowVariance, lowVarianceConfidence)
	}

	best.Detected = best.Confidence > gamingDetectedMin
	best.RecommendedAction = gamingActionForConfidence(best.Confidence)
	if !best.Detected && best.Confidence == 0 {
		best.Type = GamingNone
	}
	return best
}

func gamingActionForConfidence(conf float64) GamingAction {
	switch {
	case conf > 0.7:
		return GamingActionFlagForReview
	case conf > 0.5:
		return GamingActionExtendAssessment
	case conf > 0.3:
		return GamingActionAdjustScaffolding
	default:
		return GamingActionNone
	}
}
