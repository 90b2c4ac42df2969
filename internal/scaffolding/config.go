package scaffolding

import "github.com/yungbote/ccis-backend/internal/ccis"

// HintFrequency is the ladder of hint availability, most to least generous.
type HintFrequency string

const (
	HintsUnlimited HintFrequency = "unlimited"
	HintsFrequent  HintFrequency = "frequent"
	HintsOnRequest HintFrequency = "on_request"
	HintsMinimal   HintFrequency = "minimal"
	HintsNone      HintFrequency = "none"
)

type HintPolicy struct {
	Enabled   bool          `json:"enabled"`
	Frequency HintFrequency `json:"frequency"`
	Quality   string        `json:"quality"` // detailed | guiding | minimal
	Timing    string        `json:"timing"`  // immediate | delayed | on_request
}

type ComplexityPolicy struct {
	Level            string `json:"level"` // basic | intermediate | advanced | expert
	Adaptive         bool   `json:"adaptive"`
	MultiStep        bool   `json:"multi_step"`
	AbstractionLevel string `json:"abstraction_level"` // concrete | mixed | abstract
}

type FeedbackPolicy struct {
	Frequency            string `json:"frequency"`              // continuous | frequent | periodic | on_completion
	Detail               string `json:"detail"`                 // comprehensive | detailed | summary | minimal
	ErrorCorrectionStyle string `json:"error_correction_style"` // immediate | guided | self_discovery
	ReinforcementTone    string `json:"reinforcement_tone"`     // positive | balanced | neutral
}

type TimePolicy struct {
	Pressure          string `json:"pressure"` // none | low | moderate | high
	ExtensionsAllowed bool   `json:"extensions_allowed"`
	Warnings          bool   `json:"warnings"`
	SelfPaced         bool   `json:"self_paced"`
}

type CulturalPolicy struct {
	AuthorityStructure    string `json:"authority_structure"`    // peer | facilitated | hierarchical
	CollaborationEmphasis string `json:"collaboration_emphasis"` // individual | mixed | group
	CommunicationStyle    string `json:"communication_style"`    // direct | contextual
}

// Config is the full support configuration governing a learner's next task.
// Computed fresh per adjustment request; the caller persists and propagates it.
type Config struct {
	Hints          HintPolicy       `json:"hints"`
	TaskComplexity ComplexityPolicy `json:"task_complexity"`
	Feedback       FeedbackPolicy   `json:"feedback"`
	TimeManagement TimePolicy       `json:"time_management"`
	Cultural       CulturalPolicy   `json:"cultural"`
}

// baselines maps each CCIS level to its canonical configuration. The four
// form an ordered ladder from extensive support down to none.
var baselines = map[ccis.Level]Config{
	ccis.LevelNovice: {
		Hints:          HintPolicy{Enabled: true, Frequency: HintsUnlimited, Quality: "detailed", Timing: "immediate"},
		TaskComplexity: ComplexityPolicy{Level: "basic", Adaptive: false, MultiStep: false, AbstractionLevel: "concrete"},
		Feedback:       FeedbackPolicy{Frequency: "continuous", Detail: "comprehensive", ErrorCorrectionStyle: "immediate", ReinforcementTone: "positive"},
		TimeManagement: TimePolicy{Pressure: "none", ExtensionsAllowed: true, Warnings: false, SelfPaced: true},
		Cultural:       CulturalPolicy{AuthorityStructure: "facilitated", CollaborationEmphasis: "mixed", CommunicationStyle: "contextual"},
	},
	ccis.LevelGuided: {
		Hints:          HintPolicy{Enabled: true, Frequency: HintsFrequent, Quality: "guiding", Timing: "delayed"},
		TaskComplexity: ComplexityPolicy{Level: "intermediate", Adaptive: true, MultiStep: true, AbstractionLevel: "concrete"},
		Feedback:       FeedbackPolicy{Frequency: "frequent", Detail: "detailed", ErrorCorrectionStyle: "guided", ReinforcementTone: "positive"},
		TimeManagement: TimePolicy{Pressure: "low", ExtensionsAllowed: true, Warnings: true, SelfPaced: true},
		Cultural:       CulturalPolicy{AuthorityStructure: "facilitated", CollaborationEmphasis: "mixed", CommunicationStyle: "contextual"},
	},
	ccis.LevelSelfDirected: {
		Hints:          HintPolicy{Enabled: true, Frequency: HintsOnRequest, Quality: "guiding", Timing: "on_request"},
		TaskComplexity: ComplexityPolicy{Level: "advanced", Adaptive: true, MultiStep: true, AbstractionLevel: "mixed"},
		Feedback:       FeedbackPolicy{Frequency: "periodic", Detail: "summary", ErrorCorrectionStyle: "guided", ReinforcementTone: "balanced"},
		TimeManagement: TimePolicy{Pressure: "moderate", ExtensionsAllowed: true, Warnings: true, SelfPaced: false},
		Cultural:       CulturalPolicy{AuthorityStructure: "peer", CollaborationEmphasis: "group", CommunicationStyle: "direct"},
	},
	ccis.LevelAutonomous: {
		Hints:          HintPolicy{Enabled: false, Frequency: HintsNone, Quality: "minimal", Timing: "on_request"},
		TaskComplexity: ComplexityPolicy{Level: "expert", Adaptive: true, MultiStep: true, AbstractionLevel: "abstract"},
		Feedback:       FeedbackPolicy{Frequency: "on_completion", Detail: "minimal", ErrorCorrectionStyle: "self_discovery", ReinforcementTone: "neutral"},
		TimeManagement: TimePolicy{Pressure: "high", ExtensionsAllowed: false, Warnings: true, SelfPaced: false},
		Cultural:       CulturalPolicy{AuthorityStructure: "peer", CollaborationEmphasis: "individual", CommunicationStyle: "direct"},
	},
}

// BaselineForLevel returns the canonical configuration for a CCIS level. The
// returned value is a copy; callers mutate freely.
func BaselineForLevel(level ccis.Level) (Config, bool) {
	cfg, ok := baselines[level]
	return cfg, ok
}
