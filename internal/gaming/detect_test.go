package gaming

import (
	"errors"
	"testing"

	"github.com/yungbote/ccis-backend/internal/ccis"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
)

func honestSignals() ccis.BehavioralSignals {
	return ccis.BehavioralSignals{
		HintRequestFrequency:     0.3,
		ErrorRecoverySpeed:       0.94,
		TransferSuccessRate:      0.1,
		MetacognitiveAccuracy:    0.9,
		TaskCompletionEfficiency: 0.05,
		HelpSeekingQuality:       0.5,
		SelfAssessmentAlignment:  0.55,
		TaskCount:                12,
		AssessmentDuration:       50,
	}
}

func honestInput() SessionInput {
	return SessionInput{
		Competency:  ccis.CompetencyCommunication,
		Signals:     honestSignals(),
		TaskTimings: []float64{95, 210, 60, 144, 330, 42},
		HintCounts:  []int{2, 0, 1, 3, 1, 2},
		ErrorCounts: []int{1, 0, 2, 1, 0, 3},
		Environment: Environment{DeviceType: "laptop", NetworkQuality: NetworkGood, HourOfDay: 14},
	}
}

func findPattern(patterns []DetectedPattern, typ PatternType) *DetectedPattern {
	for i := range patterns {
		if patterns[i].Type == typ {
			return &patterns[i]
		}
	}
	return nil
}

func TestAnalyzeSession_HonestSessionLowRisk(t *testing.T) {
	res, err := AnalyzeSession(honestInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskLevel != RiskNone && res.RiskLevel != RiskLow {
		t.Fatalf("honest session risk = %v (score %v, patterns %+v)", res.RiskLevel, res.OverallRiskScore, res.Patterns)
	}
	if res.HumanReviewRequired {
		t.Fatalf("honest session should not require human review")
	}
}

func TestAnalyzeSession_RejectsInvalidSignals(t *testing.T) {
	in := honestInput()
	in.Signals.TransferSuccessRate = 2
	if _, err := AnalyzeSession(in); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestDetectVarianceAnomaly(t *testing.T) {
	in := honestInput()
	flat := ccis.BehavioralSignals{
		HintRequestFrequency: 0.5, ErrorRecoverySpeed: 0.5, TransferSuccessRate: 0.5,
		MetacognitiveAccuracy: 0.5, TaskCompletionEfficiency: 0.5, HelpSeekingQuality: 0.5,
		SelfAssessmentAlignment: 0.5,
	}
	in.Signals = flat
	d := detectVarianceAnomaly(in)
	if !d.anomalous {
		t.Fatalf("expected low-variance anomaly")
	}

	perfect := flat
	perfect.ErrorRecoverySpeed = 0.99
	perfect.TransferSuccessRate = 0.99
	perfect.MetacognitiveAccuracy = 0.99
	in.Signals = perfect
	d = detectVarianceAnomaly(in)
	if !d.anomalous || d.confidence < 0.9 {
		t.Fatalf("expected too-perfect anomaly with confidence >= 0.9, got %+v", d)
	}

	erratic := ccis.BehavioralSignals{
		HintRequestFrequency: 0, ErrorRecoverySpeed: 1, TransferSuccessRate: 0,
		MetacognitiveAccuracy: 1, TaskCompletionEfficiency: 0, HelpSeekingQuality: 1,
		SelfAssessmentAlignment: 0,
	}
	in.Signals = erratic
	d = detectVarianceAnomaly(in)
	if !d.anomalous {
		t.Fatalf("expected high-variance anomaly")
	}
}

func TestDetectTimingIrregularity(t *testing.T) {
	in := honestInput()

	in.TaskTimings = []float64{4, 6, 3, 120, 90, 2}
	if d := detectTimingIrregularity(in); !d.anomalous || d.confidence < 0.8 {
		t.Fatalf("expected too-fast anomaly, got %+v", d)
	}

	in.TaskTimings = []float64{120, 90, 2400}
	if d := detectTimingIrregularity(in); !d.anomalous || d.confidence != 0.5 {
		t.Fatalf("expected too-slow anomaly, got %+v", d)
	}

	in.TaskTimings = []float64{100, 101, 99, 100, 100}
	if d := detectTimingIrregularity(in); !d.anomalous || d.confidence != 0.7 {
		t.Fatalf("expected mechanically-regular anomaly, got %+v", d)
	}

	in.TaskTimings = nil
	if d := detectTimingIrregularity(in); d.anomalous {
		t.Fatalf("no timings should mean no finding, got %+v", d)
	}
}

func TestDetectPerformanceAnomaly(t *testing.T) {
	in := honestInput()
	in.Signals.HintRequestFrequency = 0.01
	in.HintCounts = []int{0, 0, 0, 0}
	in.ErrorCounts = []int{1, 2, 1, 3}
	d := detectPerformanceAnomaly(in)
	if !d.anomalous || d.confidence != 0.75 {
		t.Fatalf("expected no-help anomaly, got %+v", d)
	}

	in = honestInput()
	in.HintCounts = []int{6, 7, 8, 6}
	in.ErrorCounts = []int{0, 0, 0, 0}
	d = detectPerformanceAnomaly(in)
	if !d.anomalous || d.confidence != 0.7 {
		t.Fatalf("expected hint/success inconsistency, got %+v", d)
	}

	in = honestInput()
	in.ErrorCounts = []int{0, 0, 0, 0, 0, 1}
	d = detectPerformanceAnomaly(in)
	if !d.anomalous || d.confidence <= 0.8 {
		t.Fatalf("expected error-free anomaly, got %+v", d)
	}
}

func TestDetectHistoricalInconsistency(t *testing.T) {
	in := honestInput()
	if d := detectHistoricalInconsistency(in); d.anomalous {
		t.Fatalf("nil history must skip the detector, got %+v", d)
	}

	in.Signals = ccis.BehavioralSignals{
		HintRequestFrequency: 0.9, ErrorRecoverySpeed: 0.9, TransferSuccessRate: 0.9,
		MetacognitiveAccuracy: 0.9, TaskCompletionEfficiency: 0.9, HelpSeekingQuality: 0.9,
		SelfAssessmentAlignment: 0.9, TaskCount: 5, AssessmentDuration: 30,
	}
	in.History = &HistoricalData{
		CompetencyAverages: map[ccis.CompetencyType]float64{
			ccis.CompetencyCommunication: 0.3,
		},
	}
	d := detectHistoricalInconsistency(in)
	if !d.anomalous || d.confidence < 0.85 {
		t.Fatalf("expected impossible-improvement anomaly, got %+v", d)
	}

	// Matching average: no finding, and the placeholder similarity never
	// trips the near-identical branch.
	in.History.CompetencyAverages[ccis.CompetencyCommunication] = 0.85
	in.History.Sessions = []PastSession{
		{Competency: ccis.CompetencyCommunication},
		{Competency: ccis.CompetencyCommunication},
		{Competency: ccis.CompetencyCommunication},
	}
	if d := detectHistoricalInconsistency(in); d.anomalous {
		t.Fatalf("expected no finding, got %+v", d)
	}
}

func TestDetectMetadataAnomaly(t *testing.T) {
	in := honestInput()
	in.Environment.HourOfDay = 3
	if d := detectMetadataAnomaly(in); !d.anomalous || d.confidence != 0.5 {
		t.Fatalf("expected off-hours anomaly, got %+v", d)
	}

	in = honestInput()
	in.Environment.NetworkQuality = NetworkPoor
	in.Signals = ccis.BehavioralSignals{
		HintRequestFrequency: 0.95, ErrorRecoverySpeed: 0.95, TransferSuccessRate: 0.95,
		MetacognitiveAccuracy: 0.95, TaskCompletionEfficiency: 0.95, HelpSeekingQuality: 0.95,
		SelfAssessmentAlignment: 0.95,
	}
	if d := detectMetadataAnomaly(in); !d.anomalous || d.confidence != 0.6 {
		t.Fatalf("expected poor-network anomaly, got %+v", d)
	}

	in = honestInput()
	if d := detectMetadataAnomaly(in); d.anomalous {
		t.Fatalf("expected no metadata finding, got %+v", d)
	}
}

func TestAnalyzeSession_EscalationAndMapping(t *testing.T) {
	in := honestInput()
	// Stack anomalies: flat perfect signals, fast regular timings, zero
	// errors, impossible improvement, off-hours on a poor network.
	in.Signals = ccis.BehavioralSignals{
		HintRequestFrequency: 0.99, ErrorRecoverySpeed: 0.99, TransferSuccessRate: 0.99,
		MetacognitiveAccuracy: 0.99, TaskCompletionEfficiency: 0.99, HelpSeekingQuality: 0.99,
		SelfAssessmentAlignment: 0.99, TaskCount: 5, AssessmentDuration: 8,
	}
	in.TaskTimings = []float64{4, 5, 4, 5, 3, 4}
	in.HintCounts = []int{0, 0, 0, 0, 0, 0}
	in.ErrorCounts = []int{0, 0, 0, 0, 0, 0}
	in.Environment = Environment{NetworkQuality: NetworkPoor, HourOfDay: 2}
	in.History = &HistoricalData{
		CompetencyAverages: map[ccis.CompetencyType]float64{ccis.CompetencyCommunication: 0.2},
	}

	res, err := AnalyzeSession(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskLevel != RiskCritical {
		t.Fatalf("stacked anomalies risk = %v (score %v), want critical", res.RiskLevel, res.OverallRiskScore)
	}
	if res.RecommendedAction != ActionInvalidateSession {
		t.Fatalf("action = %v, want %v", res.RecommendedAction, ActionInvalidateSession)
	}
	if res.InterventionPriority != PriorityImmediate {
		t.Fatalf("priority = %v, want %v", res.InterventionPriority, PriorityImmediate)
	}
	if !res.HumanReviewRequired {
		t.Fatalf("critical risk must require human review")
	}
	if len(res.Patterns) < 4 {
		t.Fatalf("expected at least 4 detected patterns, got %d", len(res.Patterns))
	}
}

func TestRiskLevelForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskNone},
		{0.19, RiskNone},
		{0.2, RiskLow},
		{0.4, RiskMedium},
		{0.6, RiskHigh},
		{0.8, RiskCritical},
		{0.95, RiskCritical},
	}
	for _, tc := range cases {
		if got := riskLevelForScore(tc.score); got != tc.want {
			t.Fatalf("riskLevelForScore(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}
