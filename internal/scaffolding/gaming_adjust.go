package scaffolding

import (
	"time"

	"github.com/yungbote/ccis-backend/internal/gaming"
)

// Adjustment is the outcome of reshaping a configuration in response to a
// gaming analysis, together with what to watch and when to roll back.
type Adjustment struct {
	Config           Config           `json:"config"`
	RiskLevel        gaming.RiskLevel `json:"risk_level"`
	Changed          bool             `json:"changed"`
	Monitoring       []string         `json:"monitoring"`
	RollbackCriteria []string         `json:"rollback_criteria"`
	AdjustedAt       time.Time        `json:"adjusted_at"`
}

// Monitoring metrics and rollback criteria stamped onto every adjustment,
// independent of risk level.
var (
	monitoringMetrics = []string{
		"overall_risk_score",
		"raw_score_delta",
		"hint_request_frequency",
		"frustration_level",
	}
	rollbackCriteria = []string{
		"risk level drops below medium",
		"raw score degrades by more than 0.2",
		"frustration level exceeds 0.8",
	}
)

// AdjustForGaming applies the fixed override table keyed by risk level.
// CRITICAL removes hints entirely and maxes complexity and time pressure
// regardless of the input configuration; LOW and NONE leave it untouched.
func AdjustForGaming(cfg Config, analysis gaming.AnalysisResult) Adjustment {
	out := cfg
	changed := true

	switch analysis.RiskLevel {
	case gaming.RiskCritical:
		out.Hints = HintPolicy{Enabled: false, Frequency: HintsNone, Quality: "minimal", Timing: "on_request"}
		out.TaskComplexity = ComplexityPolicy{Level: "expert", Adaptive: false, MultiStep: true, AbstractionLevel: "abstract"}
		out.TimeManagement.Pressure = "high"
		out.TimeManagement.ExtensionsAllowed = false
		out.TimeManagement.SelfPaced = false
	case gaming.RiskHigh:
		out.Hints.Frequency = HintsMinimal
		out.Hints.Quality = "minimal"
		out.Hints.Timing = "delayed"
		out.TaskComplexity.Adaptive = false
	case gaming.RiskMedium:
		if out.Hints.Frequency == HintsUnlimited || out.Hints.Frequency == HintsFrequent {
			out.Hints.Frequency = HintsOnRequest
		}
		out.TaskComplexity.Adaptive = false
	default:
		changed = false
	}

	return Adjustment{
		Config:           out,
		RiskLevel:        analysis.RiskLevel,
		Changed:          changed && out != cfg,
		Monitoring:       append([]string(nil), monitoringMetrics...),
		RollbackCriteria: append([]string(nil), rollbackCriteria...),
		AdjustedAt:       time.Now().UTC(),
	}
}
