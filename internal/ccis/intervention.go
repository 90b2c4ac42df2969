package ccis

type InterventionReason string

const (
	InterventionNone         InterventionReason = "none"
	InterventionOverReliance InterventionReason = "hint_over_reliance"
	InterventionPoorRecovery InterventionReason = "poor_error_recovery"
	InterventionPoorTransfer InterventionReason = "poor_transfer"
	InterventionPlateau      InterventionReason = "completion_plateau"
)

type InterventionUrgency string

const (
	UrgencyNone   InterventionUrgency = "none"
	UrgencyLow    InterventionUrgency = "low"
	UrgencyMedium InterventionUrgency = "medium"
	UrgencyHigh   InterventionUrgency = "high"
)

// InterventionCheck carries the single highest-priority intervention
// recommendation for a signal snapshot.
type InterventionCheck struct {
	Needed           bool                `json:"needed"`
	Reason           InterventionReason  `json:"reason"`
	Urgency          InterventionUrgency `json:"urgency"`
	SuggestedActions []string            `json:"suggested_actions,omitempty"`
}

const (
	overRelianceHintMin  = 0.8
	poorRecoveryMax      = 0.2
	poorTransferMax      = 0.3
	plateauEfficiencyMax = 0.15
)

// interventionRules is ordered by precedence; the first matching rule wins.
var interventionRules = []struct {
	Reason  InterventionReason
	Match   func(BehavioralSignals) bool
	Urgency InterventionUrgency
	Actions []string
}{
	{
		Reason:  InterventionOverReliance,
		Match:   func(s BehavioralSignals) bool { return s.HintRequestFrequency > overRelianceHintMin },
		Urgency: UrgencyHigh,
		Actions: []string{"decrease scaffolding", "delay hint availability", "require attempt before hint"},
	},
	{
		Reason:  InterventionPoorRecovery,
		Match:   func(s BehavioralSignals) bool { return s.ErrorRecoverySpeed < poorRecoveryMax },
		Urgency: UrgencyHigh,
		Actions: []string{"schedule expert guidance", "insert worked examples"},
	},
	{
		Reason:  InterventionPoorTransfer,
		Match:   func(s BehavioralSignals) bool { return s.TransferSuccessRate < poorTransferMax },
		Urgency: UrgencyMedium,
		Actions: []string{"increase scaffolding", "add analogous practice tasks"},
	},
	{
		Reason:  InterventionPlateau,
		Match:   func(s BehavioralSignals) bool { return s.TaskCompletionEfficiency < plateauEfficiencyMax },
		Urgency: UrgencyMedium,
		Actions: []string{"recommend break", "rotate task formats"},
	},
}

// CheckIntervention returns the highest-priority matching intervention, or a
// no-action result when nothing matches.
func CheckIntervention(signals BehavioralSignals) InterventionCheck {
	for _, rule := range interventionRules {
		if rule.Match(signals) {
			return InterventionCheck{
				Needed:           true,
				Reason:           rule.Reason,
				Urgency:          rule.Urgency,
				SuggestedActions: rule.Actions,
			}
		}
	}
	return InterventionCheck{Needed: false, Reason: InterventionNone, Urgency: UrgencyNone}
}
