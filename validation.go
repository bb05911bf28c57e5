package dkg

// SecurityLevel classifies a ceremony parameter choice.
type SecurityLevel string

const (
	SecurityLevelLow    SecurityLevel = "low"
	SecurityLevelMedium SecurityLevel = "medium"
	SecurityLevelHigh   SecurityLevel = "high"
)

// byzantineRatio is the honest-majority fraction required to tolerate
// Byzantine participants.
const byzantineRatio = 2.0 / 3.0

// ValidationReport is the outcome of parameter validation. Errors make
// the parameters unusable; warnings and recommendations are advisory.
type ValidationReport struct {
	Valid                  bool          `json:"valid"`
	SecurityLevel          SecurityLevel `json:"security_level"`
	ByzantineFaultTolerant bool          `json:"byzantine_fault_tolerance"`
	Warnings               []string      `json:"warnings,omitempty"`
	Errors                 []string      `json:"errors,omitempty"`
	Recommendations        []string      `json:"recommendations,omitempty"`
}

// ParameterValidator checks ceremony parameters against deployment
// policy. The zero value is not useful; start from
// NewDefaultParameterValidator and adjust.
type ParameterValidator struct {
	MinParticipants     int     `json:"min_participants"`
	MaxParticipants     int     `json:"max_participants"`
	RecommendedMinRatio float64 `json:"recommended_min_ratio"`
	RecommendedMaxRatio float64 `json:"recommended_max_ratio"`
}

// NewDefaultParameterValidator returns a validator with conservative
// defaults for a key-management network.
func NewDefaultParameterValidator() *ParameterValidator {
	return &ParameterValidator{
		MinParticipants:     3,
		MaxParticipants:     1024,
		RecommendedMinRatio: 0.51,
		RecommendedMaxRatio: 0.80,
	}
}

// Validate classifies a (threshold, participantCount) pair. The hard
// rules mirror what the ceremony constructor enforces; everything else
// here is guidance for operators choosing parameters.
func (v *ParameterValidator) Validate(threshold, participantCount int) *ValidationReport {
	report := &ValidationReport{
		Valid:         true,
		SecurityLevel: SecurityLevelMedium,
	}

	if threshold < 1 {
		report.Valid = false
		report.Errors = append(report.Errors, "threshold must be at least 1")
	}
	if participantCount < 1 {
		report.Valid = false
		report.Errors = append(report.Errors, "participant count must be at least 1")
	}
	if threshold > participantCount {
		report.Valid = false
		report.Errors = append(report.Errors, "threshold cannot exceed participant count")
	}
	if participantCount > v.MaxParticipants {
		report.Valid = false
		report.Errors = append(report.Errors, "participant count exceeds configured maximum")
	}
	if !report.Valid {
		report.SecurityLevel = SecurityLevelLow
		return report
	}

	if participantCount < v.MinParticipants {
		report.Warnings = append(report.Warnings,
			"participant count below recommended minimum; consider at least 3 participants")
	}

	ratio := float64(threshold) / float64(participantCount)
	report.ByzantineFaultTolerant = ratio > byzantineRatio

	switch {
	case threshold == 1:
		report.SecurityLevel = SecurityLevelLow
		report.Warnings = append(report.Warnings,
			"threshold of 1 places the whole secret with every participant")
	case ratio < v.RecommendedMinRatio:
		report.SecurityLevel = SecurityLevelLow
		report.Recommendations = append(report.Recommendations,
			"raise the threshold above half the participant count")
	case ratio > v.RecommendedMaxRatio:
		report.SecurityLevel = SecurityLevelHigh
		report.Recommendations = append(report.Recommendations,
			"a very high threshold trades availability for safety; ensure enough participants stay online")
	default:
		report.SecurityLevel = SecurityLevelMedium
	}

	if report.ByzantineFaultTolerant && report.SecurityLevel != SecurityLevelLow {
		report.SecurityLevel = SecurityLevelHigh
	}

	return report
}
