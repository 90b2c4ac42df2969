package ccis

import (
	"errors"
	"math"
	"testing"

	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
)

func validSignals() BehavioralSignals {
	return BehavioralSignals{
		HintRequestFrequency:     0.1,
		ErrorRecoverySpeed:       0.8,
		TransferSuccessRate:      0.75,
		MetacognitiveAccuracy:    0.7,
		TaskCompletionEfficiency: 0.6,
		HelpSeekingQuality:       0.5,
		SelfAssessmentAlignment:  0.5,
		TaskCount:                10,
		AssessmentDuration:       45,
	}
}

func TestSignalWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, sw := range signalWeights {
		sum += sw.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("signal weights sum to %v, want 1.0", sum)
	}
}

func TestCalculate_KnownScenario(t *testing.T) {
	res, err := Calculate(validSignals())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 0.1*0.35 + 0.8*0.25 + 0.75*0.20 + 0.7*0.10 + 0.6*0.05 + 0.5*0.03 + 0.5*0.02
	want := 0.51
	if math.Abs(res.RawScore-want) > 1e-9 {
		t.Fatalf("raw score = %v, want %v", res.RawScore, want)
	}
	if res.Level != LevelSelfDirected {
		t.Fatalf("level = %v, want %v", res.Level, LevelSelfDirected)
	}
	if len(res.Breakdown) != 7 {
		t.Fatalf("breakdown entries = %d, want 7", len(res.Breakdown))
	}
	var contribSum float64
	for _, b := range res.Breakdown {
		contribSum += b.Contribution
	}
	if math.Abs(contribSum-res.RawScore) > 1e-9 {
		t.Fatalf("breakdown contributions sum to %v, raw score is %v", contribSum, res.RawScore)
	}
}

func TestLevelFromScore_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Level
	}{
		{0, LevelNovice},
		{0.24, LevelNovice},
		{0.25, LevelNovice},
		{0.26, LevelGuided},
		{0.50, LevelGuided},
		{0.51, LevelSelfDirected},
		{0.85, LevelSelfDirected},
		{0.851, LevelAutonomous},
		{1, LevelAutonomous},
	}
	for _, tc := range cases {
		if got := LevelFromScore(tc.score); got != tc.want {
			t.Fatalf("LevelFromScore(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestLevelFromScore_Monotonic(t *testing.T) {
	prev := LevelNovice
	for score := 0.0; score <= 1.0; score += 0.001 {
		l := LevelFromScore(score)
		if l < prev {
			t.Fatalf("level decreased from %v to %v at score %v", prev, l, score)
		}
		prev = l
	}
}

func TestCalculate_RawScoreBounded(t *testing.T) {
	for _, s := range []BehavioralSignals{
		{},
		{HintRequestFrequency: 1, ErrorRecoverySpeed: 1, TransferSuccessRate: 1, MetacognitiveAccuracy: 1, TaskCompletionEfficiency: 1, HelpSeekingQuality: 1, SelfAssessmentAlignment: 1},
		validSignals(),
	} {
		res, err := Calculate(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.RawScore < 0 || res.RawScore > 1 {
			t.Fatalf("raw score %v outside [0,1]", res.RawScore)
		}
	}
}

func TestCalculate_ConfidenceBounded(t *testing.T) {
	zero := BehavioralSignals{}
	res, err := Calculate(zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Confidence < 0 || res.Confidence > 100 {
		t.Fatalf("confidence %v outside [0,100]", res.Confidence)
	}
	// Zero evidence still earns the consistency component.
	if res.Confidence == 0 {
		t.Fatalf("expected non-zero confidence for consistent zero-signal vector")
	}

	full := validSignals()
	full.TaskCount = 100
	full.AssessmentDuration = 600
	res2, err := Calculate(full)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res2.Confidence > 100 {
		t.Fatalf("confidence %v exceeds 100", res2.Confidence)
	}
}

func TestCalculate_RejectsOutOfRange(t *testing.T) {
	bad := validSignals()
	bad.TransferSuccessRate = 1.2
	if _, err := Calculate(bad); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for out-of-range signal, got %v", err)
	}

	neg := validSignals()
	neg.HintRequestFrequency = -0.1
	if _, err := Calculate(neg); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative signal, got %v", err)
	}

	negTasks := validSignals()
	negTasks.TaskCount = -1
	if _, err := Calculate(negTasks); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative task count, got %v", err)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	s := validSignals()
	a, err := Calculate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Calculate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.CalculatedAt = b.CalculatedAt
	if a.RawScore != b.RawScore || a.Level != b.Level || a.Confidence != b.Confidence ||
		a.Gaming != b.Gaming || a.Intervention.Needed != b.Intervention.Needed {
		t.Fatalf("identical input produced different results: %+v vs %+v", a, b)
	}
}

func TestCalculateOverall_EmptyList(t *testing.T) {
	if _, err := CalculateOverall(nil); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty list, got %v", err)
	}
}

func TestCalculateOverall_WeightsAndRanking(t *testing.T) {
	strong := validSignals()
	strong.TransferSuccessRate = 0.9
	strong.ErrorRecoverySpeed = 0.9

	weak := validSignals()
	weak.TransferSuccessRate = 0.2
	weak.ErrorRecoverySpeed = 0.2
	weak.MetacognitiveAccuracy = 0.2

	mid := validSignals()

	inputs := []CompetencySignals{
		{Competency: CompetencyCommunication, Signals: strong},
		{Competency: CompetencyDataAnalysis, Signals: weak},
		{Competency: CompetencyCriticalThinking, Signals: mid},
	}
	out, err := CalculateOverall(inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.PerCompetency) != 3 {
		t.Fatalf("per-competency entries = %d, want 3", len(out.PerCompetency))
	}
	if out.OverallScore < 0 || out.OverallScore > 1 {
		t.Fatalf("overall score %v outside [0,1]", out.OverallScore)
	}
	if out.ReadinessPercentage != int(math.Round(out.OverallScore*100)) {
		t.Fatalf("readiness %d does not round overall score %v", out.ReadinessPercentage, out.OverallScore)
	}
	if len(out.Strongest) != 2 || out.Strongest[0] != CompetencyCommunication {
		t.Fatalf("strongest = %v, want communication first", out.Strongest)
	}
	if len(out.DevelopmentAreas) != 2 || out.DevelopmentAreas[0] != CompetencyDataAnalysis {
		t.Fatalf("development areas = %v, want data_analysis first", out.DevelopmentAreas)
	}
}

func TestCalculateOverall_TiesStableByInputOrder(t *testing.T) {
	s := validSignals()
	inputs := []CompetencySignals{
		{Competency: CompetencyCommunication, Signals: s},
		{Competency: CompetencyDataAnalysis, Signals: s},
		{Competency: CompetencyCriticalThinking, Signals: s},
	}
	out, err := CalculateOverall(inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Strongest[0] != CompetencyCommunication || out.Strongest[1] != CompetencyDataAnalysis {
		t.Fatalf("tie-broken strongest = %v, want input order", out.Strongest)
	}
	if out.DevelopmentAreas[0] != CompetencyCommunication || out.DevelopmentAreas[1] != CompetencyDataAnalysis {
		t.Fatalf("tie-broken development areas = %v, want input order", out.DevelopmentAreas)
	}
}

func TestIndustryWeight_Defaults(t *testing.T) {
	if w := IndustryWeight(CompetencyCommunication); w != 0.20 {
		t.Fatalf("communication weight = %v, want 0.20", w)
	}
	if w := IndustryWeight(CompetencyLeadership); w != 0.05 {
		t.Fatalf("leadership weight = %v, want 0.05", w)
	}
	if w := IndustryWeight(CompetencyDataAnalysis); w != defaultIndustryWeight {
		t.Fatalf("unlisted competency weight = %v, want default %v", w, defaultIndustryWeight)
	}
}
