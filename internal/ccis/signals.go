package ccis

import (
	"fmt"
	"math"

	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
)

// BehavioralSignals holds the seven normalized interaction metrics for one
// assessment session plus the evidence metadata backing them. Values are
// immutable once created; callers replace rather than mutate.
type BehavioralSignals struct {
	HintRequestFrequency     float64 `json:"hint_request_frequency"`
	ErrorRecoverySpeed       float64 `json:"error_recovery_speed"`
	TransferSuccessRate      float64 `json:"transfer_success_rate"`
	MetacognitiveAccuracy    float64 `json:"metacognitive_accuracy"`
	TaskCompletionEfficiency float64 `json:"task_completion_efficiency"`
	HelpSeekingQuality       float64 `json:"help_seeking_quality"`
	SelfAssessmentAlignment  float64 `json:"self_assessment_alignment"`

	TaskCount          int     `json:"task_count"`
	AssessmentDuration float64 `json:"assessment_duration_minutes"`
}

// Validate rejects out-of-range input instead of clamping. A signal outside
// [0,1] is a caller bug and silently correcting it would skew every score
// derived downstream.
func (s BehavioralSignals) Validate() error {
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"hint_request_frequency", s.HintRequestFrequency},
		{"error_recovery_speed", s.ErrorRecoverySpeed},
		{"transfer_success_rate", s.TransferSuccessRate},
		{"metacognitive_accuracy", s.MetacognitiveAccuracy},
		{"task_completion_efficiency", s.TaskCompletionEfficiency},
		{"help_seeking_quality", s.HelpSeekingQuality},
		{"self_assessment_alignment", s.SelfAssessmentAlignment},
	} {
		if f.val < 0 || f.val > 1 || math.IsNaN(f.val) {
			return fmt.Errorf("%w: signal %s=%v outside [0,1]", pkgerrors.ErrInvalidArgument, f.name, f.val)
		}
	}
	if s.TaskCount < 0 {
		return fmt.Errorf("%w: task_count=%d negative", pkgerrors.ErrInvalidArgument, s.TaskCount)
	}
	if s.AssessmentDuration < 0 || math.IsNaN(s.AssessmentDuration) {
		return fmt.Errorf("%w: assessment_duration=%v negative", pkgerrors.ErrInvalidArgument, s.AssessmentDuration)
	}
	return nil
}

// Vector returns all seven signals in weight-table order.
func (s BehavioralSignals) Vector() []float64 {
	return []float64{
		s.HintRequestFrequency,
		s.ErrorRecoverySpeed,
		s.TransferSuccessRate,
		s.MetacognitiveAccuracy,
		s.TaskCompletionEfficiency,
		s.HelpSeekingQuality,
		s.SelfAssessmentAlignment,
	}
}

// ConsistencyVector returns the four signals used for low-variance gaming
// checks: error recovery, transfer, metacognition and efficiency. Hint
// frequency and the self-report signals are excluded because they vary
// legitimately between honest sessions.
func (s BehavioralSignals) ConsistencyVector() []float64 {
	return []float64{
		s.ErrorRecoverySpeed,
		s.TransferSuccessRate,
		s.MetacognitiveAccuracy,
		s.TaskCompletionEfficiency,
	}
}

// Variance is the population variance of vals. Returns 0 for fewer than two
// values.
func Variance(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var acc float64
	for _, v := range vals {
		d := v - mean
		acc += d * d
	}
	return acc / float64(len(vals))
}
