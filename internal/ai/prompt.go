package ai

import (
	"fmt"
	"strings"
)

// Shape selects the report layout requested from the model.
type Shape string

const (
	ShapeExtended Shape = "extended"
	ShapeSimple   Shape = "simple"
)

// ParseShape maps a config value to a Shape, defaulting to extended.
func ParseShape(s string) Shape {
	if strings.EqualFold(strings.TrimSpace(s), string(ShapeSimple)) {
		return ShapeSimple
	}
	return ShapeExtended
}

const extendedTemplate = `{
  "bias_label": "progressive / conservative / centrist ...",
  "bias_score": 50,
  "overall_score": 85,
  "reporter_reliability": 75,
  "analysis_summary": "short critique of the article",
  "fact_checks": [
    {"point": "claim 1", "status": "true | false | unresolved", "reference_link": "supporting link or search keywords"},
    {"point": "claim 2", "status": "true | false | unresolved", "reference_link": "supporting link or search keywords"}
  ],
  "impact": "effect on everyday life"
}`

const simpleTemplate = `{
  "bias": "progressive / conservative / neutral",
  "score": 70,
  "reason": "why the article leans this way",
  "impact": "effect on everyday life"
}`

// BuildPrompt renders the analysis instruction for one headline.
// Title and source are embedded as plain text; the transport encodes the prompt.
func BuildPrompt(shape Shape, title, source, language string) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Headline: %s\nOutlet: %s\n\n", title, source)
	fmt.Fprintf(b, "Analyse the news item above. Reply in %s with exactly one JSON object in the format below and nothing else.\n", langOrDefault(language))
	if shape == ShapeSimple {
		b.WriteString(`"score" is an integer from 0 to 100 measuring how strongly the article leans; "bias" names the leaning.` + "\n\n")
		b.WriteString(simpleTemplate)
		return b.String()
	}
	b.WriteString(`"bias_score" is an integer from 0 (progressive) to 100 (conservative); 50 is neutral.` + "\n")
	b.WriteString(`"overall_score" rates the article from 0 to 100.` + "\n")
	b.WriteString(`"reporter_reliability" is an estimated reliability score (0-100) based on the reporter's track record and writing style.` + "\n")
	b.WriteString(`"fact_checks" lists the claims that need checking; "status" must be one of "true", "false", "unresolved"; "reference_link" is a real link or recommended search keywords.` + "\n\n")
	b.WriteString(extendedTemplate)
	return b.String()
}

func langOrDefault(lang string) string {
	l := strings.TrimSpace(lang)
	if l == "" {
		return "Korean"
	}
	return l
}
