package ai

import (
	"testing"

	"garim-lab/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extendedReply = "Here is the analysis:\n```json\n" + `{
  "bias_label": "중도",
  "bias_score": 48,
  "overall_score": 85,
  "reporter_reliability": 75.0,
  "analysis_summary": "균형 잡힌 보도 {대체로}",
  "fact_checks": [
    {"point": "세수 감소", "status": "참", "reference_link": "https://example.com/a"},
    {"point": "예산 증액", "status": "unresolved"},
    {"point": "발표 시점", "status": false, "reference_link": "발표 시점 검색"}
  ],
  "impact": "세금 부담"
}` + "\n```\nHope this helps."

func TestParseExtended(t *testing.T) {
	res, err := Parse(extendedReply)
	require.NoError(t, err)
	require.NotNil(t, res.Extended)
	ext := res.Extended
	assert.Equal(t, "중도", ext.BiasLabel)
	assert.Equal(t, 48, ext.BiasScore)
	assert.Equal(t, 85, ext.OverallScore)
	assert.Equal(t, 75, ext.ReporterReliability)
	assert.Equal(t, "균형 잡힌 보도 {대체로}", ext.AnalysisSummary)
	require.Len(t, ext.FactChecks, 3)
	assert.Equal(t, model.FactTrue, ext.FactChecks[0].Status)
	assert.Equal(t, model.FactUnresolved, ext.FactChecks[1].Status)
	assert.Equal(t, "", ext.FactChecks[1].ReferenceLink)
	assert.Equal(t, model.FactFalse, ext.FactChecks[2].Status)

	label, score := res.Headline()
	assert.Equal(t, "중도", label)
	assert.Equal(t, 48, score)
	assert.Equal(t, "세금 부담", res.Impact())
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"no object":          "sorry, no JSON today",
		"unbalanced":         `{"bias": "x", "score": 5`,
		"missing field":      `{"bias": "x", "score": 5, "reason": "r"}`,
		"null field":         `{"bias": "x", "score": 5, "reason": null, "impact": "i"}`,
		"score out of range": `{"bias": "x", "score": 101, "reason": "r", "impact": "i"}`,
		"negative score":     `{"bias": "x", "score": -1, "reason": "r", "impact": "i"}`,
		"fractional score":   `{"bias": "x", "score": 50.5, "reason": "r", "impact": "i"}`,
		"string bias":        `{"bias": 3, "score": 5, "reason": "r", "impact": "i"}`,
		"unknown shape":      `{"verdict": "fine"}`,
		"bad status": `{"bias_label":"a","bias_score":1,"overall_score":1,"reporter_reliability":1,` +
			`"analysis_summary":"s","fact_checks":[{"point":"p","status":"maybe"}],"impact":"i"}`,
		"missing fact checks": `{"bias_label":"a","bias_score":1,"overall_score":1,"reporter_reliability":1,` +
			`"analysis_summary":"s","impact":"i"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
			assert.Equal(t, KindMalformedResponse, KindOf(err))
		})
	}
}

func TestParseNumericStringScore(t *testing.T) {
	res, err := Parse(`{"bias": "x", "score": " 42 ", "reason": "r", "impact": "i"}`)
	require.NoError(t, err)
	assert.Equal(t, 42, res.Simple.Score)
}

func TestExtractObjectSkipsInvalidCandidates(t *testing.T) {
	got, ok := ExtractObject(`note {not json} then {"a": "}"} tail`)
	require.True(t, ok)
	assert.Equal(t, `{"a": "}"}`, got)

	got, ok = ExtractObject("use the {0-100 scale.\n```json\n{\"score\": 70}\n```")
	require.True(t, ok)
	assert.Equal(t, `{"score": 70}`, got)

	_, ok = ExtractObject(`nothing here`)
	assert.False(t, ok)
	_, ok = ExtractObject(`only {an open brace`)
	assert.False(t, ok)
}

func TestParseSkipsUnclosedBraceInProse(t *testing.T) {
	raw := "Scores use the {0-100 scale.\n```json\n{\"bias\":\"neutral\",\"score\":70,\"reason\":\"r\",\"impact\":\"i\"}\n```"
	a, err := Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, a.Simple)
	assert.Equal(t, 70, a.Simple.Score)
}

func TestExtractObjectHandlesEscapes(t *testing.T) {
	got, ok := ExtractObject(`{"a": "quote \" and brace }", "b": {"c": 1}}`)
	require.True(t, ok)
	assert.Equal(t, `{"a": "quote \" and brace }", "b": {"c": 1}}`, got)
}

func TestNormalizeStatus(t *testing.T) {
	for in, want := range map[string]model.FactStatus{
		"TRUE":        model.FactTrue,
		"거짓":          model.FactFalse,
		"판단유보":        model.FactUnresolved,
		" unresolved": model.FactUnresolved,
	} {
		got, ok := NormalizeStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := NormalizeStatus("perhaps")
	assert.False(t, ok)
}
