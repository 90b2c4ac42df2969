package ccis

import "testing"

func TestCheckIntervention_NoneNeeded(t *testing.T) {
	ic := CheckIntervention(validSignals())
	if ic.Needed {
		t.Fatalf("expected no intervention, got %+v", ic)
	}
	if ic.Reason != InterventionNone || ic.Urgency != UrgencyNone {
		t.Fatalf("no-action result should carry none reason/urgency, got %+v", ic)
	}
}

func TestCheckIntervention_Triggers(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BehavioralSignals)
		want   InterventionReason
	}{
		{"over-reliance", func(s *BehavioralSignals) { s.HintRequestFrequency = 0.9 }, InterventionOverReliance},
		{"poor recovery", func(s *BehavioralSignals) { s.ErrorRecoverySpeed = 0.1 }, InterventionPoorRecovery},
		{"poor transfer", func(s *BehavioralSignals) { s.TransferSuccessRate = 0.25 }, InterventionPoorTransfer},
		{"plateau", func(s *BehavioralSignals) { s.TaskCompletionEfficiency = 0.1 }, InterventionPlateau},
	}
	for _, tc := range cases {
		s := validSignals()
		tc.mutate(&s)
		ic := CheckIntervention(s)
		if !ic.Needed {
			t.Fatalf("%s: expected intervention", tc.name)
		}
		if ic.Reason != tc.want {
			t.Fatalf("%s: reason = %v, want %v", tc.name, ic.Reason, tc.want)
		}
		if len(ic.SuggestedActions) == 0 {
			t.Fatalf("%s: expected suggested actions", tc.name)
		}
	}
}

func TestCheckIntervention_PrecedenceOrder(t *testing.T) {
	// All four triggers at once: over-reliance outranks the rest.
	s := validSignals()
	s.HintRequestFrequency = 0.95
	s.ErrorRecoverySpeed = 0.1
	s.TransferSuccessRate = 0.1
	s.TaskCompletionEfficiency = 0.1
	ic := CheckIntervention(s)
	if ic.Reason != InterventionOverReliance {
		t.Fatalf("reason = %v, want %v", ic.Reason, InterventionOverReliance)
	}
	if ic.Urgency != UrgencyHigh {
		t.Fatalf("urgency = %v, want %v", ic.Urgency, UrgencyHigh)
	}
}
