package gaming

import (
	"testing"

	"github.com/yungbote/ccis-backend/internal/ccis"
)

func TestGeneratePreventionStrategy_MapsPatterns(t *testing.T) {
	profile := UserProfile{
		GamingPatterns: []PatternType{PatternTimingIrregularity, PatternVarianceAnomaly},
	}
	s := GeneratePreventionStrategy(profile, ccis.CompetencyDataAnalysis)
	if s.Competency != ccis.CompetencyDataAnalysis {
		t.Fatalf("competency = %v", s.Competency)
	}
	if len(s.Measures) != 2 {
		t.Fatalf("measures = %+v, want 2", s.Measures)
	}
	if s.Measures[0].Name != "minimum_task_time" || s.Measures[1].Name != "dynamic_hints" {
		t.Fatalf("unexpected measures %+v", s.Measures)
	}
}

func TestGeneratePreventionStrategy_DeduplicatesAndAlwaysReactive(t *testing.T) {
	profile := UserProfile{
		GamingPatterns: []PatternType{
			PatternHistoricalInconsistency,
			PatternMetadataAnomaly, // same measure as historical
			PatternHistoricalInconsistency,
		},
	}
	s := GeneratePreventionStrategy(profile, ccis.CompetencyCommunication)
	if len(s.Measures) != 1 || s.Measures[0].Name != "real_time_monitoring" {
		t.Fatalf("expected single deduplicated measure, got %+v", s.Measures)
	}
	if len(s.ReactiveRules) != 2 {
		t.Fatalf("reactive rules always included, got %+v", s.ReactiveRules)
	}
}

func TestGeneratePreventionStrategy_EmptyHistory(t *testing.T) {
	s := GeneratePreventionStrategy(UserProfile{}, ccis.CompetencyCommunication)
	if len(s.Measures) != 0 {
		t.Fatalf("no history should yield no proactive measures, got %+v", s.Measures)
	}
	if len(s.ReactiveRules) != 2 {
		t.Fatalf("reactive rules missing: %+v", s.ReactiveRules)
	}
}
