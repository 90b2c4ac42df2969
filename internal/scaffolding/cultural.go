package scaffolding

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type Region string

const (
	RegionIndia  Region = "INDIA"
	RegionUAE    Region = "UAE"
	RegionGlobal Region = "GLOBAL"
)

// CulturalContext describes the learner's locale for adaptation purposes.
type CulturalContext struct {
	Region                   Region   `json:"region"`
	Language                 string   `json:"language"`
	LearningStylePreferences []string `json:"learning_style_preferences,omitempty"`
}

// RegionWeights carries a region's relative emphasis per cultural dimension.
type RegionWeights struct {
	AuthorityDeference      float64 `yaml:"authority_deference" json:"authority_deference"`
	CollaborationPreference float64 `yaml:"collaboration_preference" json:"collaboration_preference"`
	CommunicationDirectness float64 `yaml:"communication_directness" json:"communication_directness"`
}

// Nudge thresholds per dimension.
const (
	authorityThreshold     = 0.70
	collaborationThreshold = 0.60
	communicationThreshold = 0.65
)

//go:embed cultural_weights.yaml
var culturalWeightsYAML []byte

type weightsFile struct {
	Regions map[string]RegionWeights `yaml:"regions"`
}

var (
	weightsOnce sync.Once
	weightsTab  map[Region]RegionWeights
	weightsErr  error
)

func regionWeightTable() (map[Region]RegionWeights, error) {
	weightsOnce.Do(func() {
		var f weightsFile
		if err := yaml.Unmarshal(culturalWeightsYAML, &f); err != nil {
			weightsErr = fmt.Errorf("parse cultural weights: %w", err)
			return
		}
		tab := make(map[Region]RegionWeights, len(f.Regions))
		for k, v := range f.Regions {
			tab[Region(strings.ToUpper(strings.TrimSpace(k)))] = v
		}
		weightsTab = tab
	})
	return weightsTab, weightsErr
}

// WeightsForRegion returns the adaptation weights for a region, falling back
// to GLOBAL for anything unlisted.
func WeightsForRegion(r Region) (RegionWeights, error) {
	tab, err := regionWeightTable()
	if err != nil {
		return RegionWeights{}, err
	}
	if w, ok := tab[Region(strings.ToUpper(string(r)))]; ok {
		return w, nil
	}
	return tab[RegionGlobal], nil
}

// applyCulturalAdaptation nudges the cultural fields of cfg wherever the
// region's weight clears the dimension threshold, and records what changed.
func applyCulturalAdaptation(cfg Config, culture CulturalContext) (Config, []string, error) {
	w, err := WeightsForRegion(culture.Region)
	if err != nil {
		return cfg, nil, err
	}

	var applied []string
	if w.AuthorityDeference > authorityThreshold {
		cfg.Cultural.AuthorityStructure = "hierarchical"
		cfg.Feedback.ErrorCorrectionStyle = "guided"
		applied = append(applied, "authority_structure")
	}
	if w.CollaborationPreference > collaborationThreshold {
		cfg.Cultural.CollaborationEmphasis = "group"
		applied = append(applied, "collaboration_emphasis")
	}
	if w.CommunicationDirectness > communicationThreshold {
		cfg.Cultural.CommunicationStyle = "direct"
		applied = append(applied, "communication_style")
	}
	return cfg, applied, nil
}
