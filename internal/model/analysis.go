package model

// FactStatus is the verdict attached to a single fact-check point.
type FactStatus string

const (
	FactTrue       FactStatus = "true"
	FactFalse      FactStatus = "false"
	FactUnresolved FactStatus = "unresolved"
)

// FactCheck is one claim extracted from a headline and its verdict.
type FactCheck struct {
	Point         string     `json:"point" yaml:"point"`
	Status        FactStatus `json:"status" yaml:"status"`
	ReferenceLink string     `json:"reference_link" yaml:"reference_link"`
}

// SimpleAnalysis is the short report shape: a bias label with one score.
type SimpleAnalysis struct {
	Bias   string `json:"bias" yaml:"bias"`
	Score  int    `json:"score" yaml:"score"`
	Reason string `json:"reason" yaml:"reason"`
	Impact string `json:"impact" yaml:"impact"`
}

// ExtendedAnalysis is the full report shape with reliability scores and fact checks.
// BiasScore runs from 0 (progressive) through 50 (neutral) to 100 (conservative).
type ExtendedAnalysis struct {
	BiasLabel           string      `json:"bias_label" yaml:"bias_label"`
	BiasScore           int         `json:"bias_score" yaml:"bias_score"`
	OverallScore        int         `json:"overall_score" yaml:"overall_score"`
	ReporterReliability int         `json:"reporter_reliability" yaml:"reporter_reliability"`
	AnalysisSummary     string      `json:"analysis_summary" yaml:"analysis_summary"`
	FactChecks          []FactCheck `json:"fact_checks" yaml:"fact_checks"`
	Impact              string      `json:"impact" yaml:"impact"`
}

// Analysis holds exactly one of the two report shapes.
type Analysis struct {
	Simple   *SimpleAnalysis   `json:"simple,omitempty" yaml:"simple,omitempty"`
	Extended *ExtendedAnalysis `json:"extended,omitempty" yaml:"extended,omitempty"`
}

// Headline returns the bias label and bias score, whichever shape is present.
func (a Analysis) Headline() (string, int) {
	switch {
	case a.Extended != nil:
		return a.Extended.BiasLabel, a.Extended.BiasScore
	case a.Simple != nil:
		return a.Simple.Bias, a.Simple.Score
	}
	return "", 0
}

// Impact returns the everyday-life impact text.
func (a Analysis) Impact() string {
	switch {
	case a.Extended != nil:
		return a.Extended.Impact
	case a.Simple != nil:
		return a.Simple.Impact
	}
	return ""
}

// Summary returns the critique text: analysis_summary or reason.
func (a Analysis) Summary() string {
	switch {
	case a.Extended != nil:
		return a.Extended.AnalysisSummary
	case a.Simple != nil:
		return a.Simple.Reason
	}
	return ""
}

// IsZero reports whether no shape is set.
func (a Analysis) IsZero() bool {
	return a.Simple == nil && a.Extended == nil
}
