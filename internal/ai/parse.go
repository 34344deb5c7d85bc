package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"garim-lab/internal/model"
)

// ExtractObject returns the first balanced, valid JSON object embedded in s.
// Markdown fences and any prose around the object are ignored.
func ExtractObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		// an unclosed brace in prose must not hide a later object
		if end := matchBrace(s, start); end >= 0 {
			if cand := s[start : end+1]; json.Valid([]byte(cand)) {
				return cand, true
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += 1 + next
	}
	return "", false
}

// matchBrace returns the index of the brace closing s[start], honouring JSON strings, or -1.
func matchBrace(s string, start int) int {
	depth := 0
	inStr, esc := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Parse turns a raw model reply into an Analysis. Every failure is a
// KindMalformedResponse *Error whose Detail names the problem.
func Parse(raw string) (model.Analysis, error) {
	obj, ok := ExtractObject(raw)
	if !ok {
		return model.Analysis{}, malformed("no JSON object in reply: "+strings.TrimSpace(raw), nil)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return model.Analysis{}, malformed(err.Error(), err)
	}
	f := fieldReader{fields: fields}
	switch {
	case f.has("bias_label") || f.has("bias_score"):
		ext := &model.ExtendedAnalysis{
			BiasLabel:           f.str("bias_label"),
			BiasScore:           f.score("bias_score"),
			OverallScore:        f.score("overall_score"),
			ReporterReliability: f.score("reporter_reliability"),
			AnalysisSummary:     f.str("analysis_summary"),
			FactChecks:          f.factChecks("fact_checks"),
			Impact:              f.str("impact"),
		}
		if f.err != nil {
			return model.Analysis{}, malformed(f.err.Error(), f.err)
		}
		return model.Analysis{Extended: ext}, nil
	case f.has("bias") || f.has("score"):
		simple := &model.SimpleAnalysis{
			Bias:   f.str("bias"),
			Score:  f.score("score"),
			Reason: f.str("reason"),
			Impact: f.str("impact"),
		}
		if f.err != nil {
			return model.Analysis{}, malformed(f.err.Error(), f.err)
		}
		return model.Analysis{Simple: simple}, nil
	}
	return model.Analysis{}, malformed("unrecognized report shape: "+obj, nil)
}

func malformed(detail string, err error) *Error {
	return &Error{Kind: KindMalformedResponse, Detail: detail, Err: err}
}

// fieldReader decodes required fields and keeps the first error.
type fieldReader struct {
	fields map[string]json.RawMessage
	err    error
}

func (f *fieldReader) has(key string) bool {
	_, ok := f.fields[key]
	return ok
}

func (f *fieldReader) fail(format string, args ...any) {
	if f.err == nil {
		f.err = fmt.Errorf(format, args...)
	}
}

func (f *fieldReader) raw(key string) (json.RawMessage, bool) {
	v, ok := f.fields[key]
	if !ok || string(v) == "null" {
		f.fail("missing field %q", key)
		return nil, false
	}
	return v, true
}

func (f *fieldReader) str(key string) string {
	v, ok := f.raw(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		f.fail("field %q: want string, got %s", key, v)
		return ""
	}
	return strings.TrimSpace(s)
}

func (f *fieldReader) score(key string) int {
	v, ok := f.raw(key)
	if !ok {
		return 0
	}
	n, err := parseScore(v)
	if err != nil {
		f.fail("field %q: %v", key, err)
		return 0
	}
	return n
}

// parseScore accepts an integral JSON number or a numeric string within [0,100].
func parseScore(v json.RawMessage) (int, error) {
	var x any
	if err := json.Unmarshal(v, &x); err != nil {
		return 0, err
	}
	var n int
	switch t := x.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("score %v is not an integer", t)
		}
		n = int(t)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("score %q is not an integer", t)
		}
		n = i
	default:
		return 0, fmt.Errorf("score %s is not a number", v)
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("score %d out of range [0,100]", n)
	}
	return n, nil
}

func (f *fieldReader) factChecks(key string) []model.FactCheck {
	v, ok := f.raw(key)
	if !ok {
		return nil
	}
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(v, &raw); err != nil {
		f.fail("field %q: want array of objects", key)
		return nil
	}
	out := make([]model.FactCheck, 0, len(raw))
	for i, item := range raw {
		sub := fieldReader{fields: item}
		fc := model.FactCheck{
			Point:  sub.str("point"),
			Status: sub.status("status"),
		}
		if sub.has("reference_link") {
			fc.ReferenceLink = sub.str("reference_link")
		}
		if sub.err != nil {
			f.fail("%s[%d]: %v", key, i, sub.err)
			return nil
		}
		out = append(out, fc)
	}
	return out
}

func (f *fieldReader) status(key string) model.FactStatus {
	v, ok := f.raw(key)
	if !ok {
		return ""
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		if b {
			return model.FactTrue
		}
		return model.FactFalse
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		f.fail("field %q: want string, got %s", key, v)
		return ""
	}
	st, ok := NormalizeStatus(s)
	if !ok {
		f.fail("field %q: unknown status %q", key, s)
	}
	return st
}

var statusAliases = map[string]model.FactStatus{
	"true":       model.FactTrue,
	"참":          model.FactTrue,
	"사실":         model.FactTrue,
	"false":      model.FactFalse,
	"거짓":         model.FactFalse,
	"unresolved": model.FactUnresolved,
	"unverified": model.FactUnresolved,
	"판단유보":       model.FactUnresolved,
	"판단 유보":      model.FactUnresolved,
}

// NormalizeStatus maps a verdict label, in English or Korean, to a FactStatus.
func NormalizeStatus(s string) (model.FactStatus, bool) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}
