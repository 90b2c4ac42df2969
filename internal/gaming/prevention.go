package gaming

import "github.com/yungbote/ccis-backend/internal/ccis"

// UserProfile summarizes a learner's gaming history for prevention planning.
type UserProfile struct {
	GamingPatterns []PatternType `json:"gaming_patterns"`
	IncidentCount  int           `json:"incident_count"`
	AccountAgeDays int           `json:"account_age_days"`
}

// PreventionMeasure is one proactive countermeasure applied to future tasks.
type PreventionMeasure struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReactiveRule adjusts a live session when a trigger pattern shows up.
type ReactiveRule struct {
	Trigger    string `json:"trigger"`
	Adjustment string `json:"adjustment"`
}

// PreventionStrategy is the deterministic plan for one learner+competency.
type PreventionStrategy struct {
	Competency    ccis.CompetencyType `json:"competency"`
	Measures      []PreventionMeasure `json:"measures"`
	ReactiveRules []ReactiveRule      `json:"reactive_rules"`
}

// measureCatalog maps each historical pattern to its fixed countermeasure.
var measureCatalog = map[PatternType]PreventionMeasure{
	PatternVarianceAnomaly: {
		Name:        "dynamic_hints",
		Description: "vary hint wording and placement so memorized responses stop matching",
	},
	PatternTimingIrregularity: {
		Name:        "minimum_task_time",
		Description: "enforce a minimum dwell time before answers are accepted",
	},
	PatternPerformanceAnomaly: {
		Name:        "randomized_ordering",
		Description: "randomize task and option ordering between sessions",
	},
	PatternHistoricalInconsistency: {
		Name:        "real_time_monitoring",
		Description: "stream session signals to the monitoring pipeline as they arrive",
	},
	PatternMetadataAnomaly: {
		Name:        "real_time_monitoring",
		Description: "stream session signals to the monitoring pipeline as they arrive",
	},
}

// reactiveRules are always included regardless of history.
var reactiveRules = []ReactiveRule{
	{Trigger: "rapid_completion", Adjustment: "increase task complexity"},
	{Trigger: "perfect_performance", Adjustment: "switch to novel question types"},
}

// GeneratePreventionStrategy maps a learner's historical gaming patterns onto
// the fixed measure catalog. Duplicate measures collapse to one.
func GeneratePreventionStrategy(profile UserProfile, competency ccis.CompetencyType) PreventionStrategy {
	seen := map[string]bool{}
	measures := make([]PreventionMeasure, 0, len(profile.GamingPatterns))
	for _, p := range profile.GamingPatterns {
		m, ok := measureCatalog[p]
		if !ok || seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		measures = append(measures, m)
	}

	rules := make([]ReactiveRule, len(reactiveRules))
	copy(rules, reactiveRules)

	return PreventionStrategy{
		Competency:    competency,
		Measures:      measures,
		ReactiveRules: rules,
	}
}
