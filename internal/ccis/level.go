package ccis

// Level is the 4-step CCIS mastery scale. Levels are ordinal; progression
// tracking requires reaching them sequentially, but LevelFromScore itself is
// stateless and maps any score directly.
type Level int

const (
	LevelNovice       Level = 1
	LevelGuided       Level = 2
	LevelSelfDirected Level = 3
	LevelAutonomous   Level = 4
)

func (l Level) Valid() bool { return l >= LevelNovice && l <= LevelAutonomous }

func (l Level) String() string {
	switch l {
	case LevelNovice:
		return "novice"
	case LevelGuided:
		return "guided"
	case LevelSelfDirected:
		return "self_directed"
	case LevelAutonomous:
		return "autonomous"
	default:
		return "unknown"
	}
}

// levelThresholds maps raw-score upper bounds (inclusive) to levels. Scores
// above the last bound are autonomous.
var levelThresholds = []struct {
	max   float64
	level Level
}{
	{0.25, LevelNovice},
	{0.50, LevelGuided},
	{0.85, LevelSelfDirected},
}

// LevelFromScore maps a raw score in [0,1] to a CCIS level.
func LevelFromScore(score float64) Level {
	for _, t := range levelThresholds {
		if score <= t.max {
			return t.level
		}
	}
	return LevelAutonomous
}

// CompetencyType names an assessed competency. The set is closed; the engine
// has no runtime extensibility beyond these.
type CompetencyType string

const (
	CompetencyCommunication      CompetencyType = "communication"
	CompetencyDataAnalysis       CompetencyType = "data_analysis"
	CompetencyTechnicalKnowledge CompetencyType = "technical_knowledge"
	CompetencyProjectManagement  CompetencyType = "project_management"
	CompetencyCriticalThinking   CompetencyType = "critical_thinking"
	CompetencyLeadership         CompetencyType = "leadership_collaboration"
	CompetencyInnovation         CompetencyType = "innovation_adaptability"
)

func (c CompetencyType) Valid() bool {
	switch c {
	case CompetencyCommunication, CompetencyDataAnalysis, CompetencyTechnicalKnowledge,
		CompetencyProjectManagement, CompetencyCriticalThinking, CompetencyLeadership,
		CompetencyInnovation:
		return true
	default:
		return false
	}
}

// defaultIndustryWeight is used for competencies without an explicit entry in
// the industry weight table.
const defaultIndustryWeight = 0.10

// industryWeights carries the fixed per-competency importance used when
// aggregating an overall readiness score. Keys follow the industry taxonomy,
// which is broader than the assessed competency set; anything unlisted falls
// back to the default.
var industryWeights = map[CompetencyType]float64{
	CompetencyCommunication: 0.20,
	"problem_solving":       0.18,
	"teamwork":              0.16,
	"adaptability":          0.15,
	"technical":             0.14,
	"time_management":       0.12,
	CompetencyLeadership:    0.05,
}

// IndustryWeight returns the fixed aggregation weight for a competency.
func IndustryWeight(c CompetencyType) float64 {
	if w, ok := industryWeights[c]; ok {
		return w
	}
	return defaultIndustryWeight
}
