package gaming

import (
	"time"

	"github.com/yungbote/ccis-backend/internal/ccis"
)

type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

type Action string

const (
	ActionNone              Action = "none"
	ActionMonitor           Action = "monitor"
	ActionExtendAssessment  Action = "extend_assessment"
	ActionFlagForReview     Action = "flag_for_review"
	ActionInvalidateSession Action = "invalidate_session"
)

type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityImmediate Priority = "immediate"
)

type PatternType string

const (
	PatternVarianceAnomaly         PatternType = "variance_anomaly"
	PatternTimingIrregularity      PatternType = "timing_irregularity"
	PatternPerformanceAnomaly      PatternType = "performance_anomaly"
	PatternHistoricalInconsistency PatternType = "historical_inconsistency"
	PatternMetadataAnomaly         PatternType = "metadata_anomaly"
)

// DetectedPattern is one detector's positive finding.
type DetectedPattern struct {
	Type        PatternType `json:"type"`
	Confidence  float64     `json:"confidence"`
	Description string      `json:"description"`
	Evidence    []string    `json:"evidence,omitempty"`
}

type NetworkQuality string

const (
	NetworkPoor NetworkQuality = "poor"
	NetworkFair NetworkQuality = "fair"
	NetworkGood NetworkQuality = "good"
)

// Environment carries session metadata collected by the client.
type Environment struct {
	DeviceType     string         `json:"device_type"`
	NetworkQuality NetworkQuality `json:"network_quality"`
	HourOfDay      int            `json:"hour_of_day"`
}

// PastSession is one prior session summary used by the historical detector.
type PastSession struct {
	Competency ccis.CompetencyType    `json:"competency"`
	RawScore   float64                `json:"raw_score"`
	Signals    ccis.BehavioralSignals `json:"signals"`
	RecordedAt time.Time              `json:"recorded_at"`
}

// HistoricalData is the explicit has-history variant; a nil pointer on
// SessionInput means no history and skips the historical detector entirely.
type HistoricalData struct {
	Sessions           []PastSession                   `json:"sessions"`
	CompetencyAverages map[ccis.CompetencyType]float64 `json:"competency_averages"`
	AccountAgeDays     int                             `json:"account_age_days"`
}

// SessionInput bundles everything one analysis call consumes.
type SessionInput struct {
	Competency  ccis.CompetencyType    `json:"competency"`
	Signals     ccis.BehavioralSignals `json:"signals"`
	TaskTimings []float64              `json:"task_timings_seconds"`
	HintCounts  []int                  `json:"hint_counts"`
	ErrorCounts []int                  `json:"error_counts"`
	Environment Environment            `json:"environment"`
	History     *HistoricalData        `json:"history,omitempty"`
}

// AnalysisResult is the per-session gaming verdict. Created fresh per call;
// persistence is the caller's concern.
type AnalysisResult struct {
	RiskLevel            RiskLevel         `json:"risk_level"`
	OverallRiskScore     float64           `json:"overall_risk_score"`
	Patterns             []DetectedPattern `json:"patterns"`
	RecommendedAction    Action            `json:"recommended_action"`
	InterventionPriority Priority          `json:"intervention_priority"`
	HumanReviewRequired  bool              `json:"human_review_required"`
	AnalyzedAt           time.Time         `json:"analyzed_at"`
}
