package report

import (
	"bytes"
	_ "embed"
	"errors"
	"text/template"
	"time"

	"garim-lab/internal/model"

	"gopkg.in/yaml.v3"
)

// Data describes one analysed headline.
type Data struct {
	Title      string
	Source     string
	Link       string
	AnalysedAt time.Time
	Analysis   model.Analysis
}

type frontmatter struct {
	Title               string `yaml:"title"`
	Source              string `yaml:"source,omitempty"`
	Link                string `yaml:"link,omitempty"`
	Datetime            string `yaml:"datetime"`
	Shape               string `yaml:"shape"`
	Bias                string `yaml:"bias"`
	BiasScore           int    `yaml:"bias_score"`
	OverallScore        *int   `yaml:"overall_score,omitempty"`
	ReporterReliability *int   `yaml:"reporter_reliability,omitempty"`
}

type body struct {
	Title       string
	Source      string
	Link        string
	Label       string
	BiasScore   int
	Overall     int
	Reliability int
	Summary     string
	FactChecks  []model.FactCheck
	Impact      string
}

//go:embed report.tmpl
var reportTpl string

var compiled = template.Must(template.New("report").Parse(reportTpl))

// Render produces a Markdown document with YAML front matter.
func Render(d Data) (string, error) {
	if d.Analysis.IsZero() {
		return "", errors.New("report: empty analysis")
	}
	label, score := d.Analysis.Headline()
	fm := frontmatter{
		Title:     d.Title,
		Source:    d.Source,
		Link:      d.Link,
		Datetime:  d.AnalysedAt.UTC().Format("2006-01-02 15:04"),
		Shape:     "simple",
		Bias:      label,
		BiasScore: score,
	}
	b := body{
		Title:     d.Title,
		Source:    d.Source,
		Link:      d.Link,
		Label:     label,
		BiasScore: score,
		Summary:   d.Analysis.Summary(),
		Impact:    d.Analysis.Impact(),
	}
	if ext := d.Analysis.Extended; ext != nil {
		fm.Shape = "extended"
		fm.OverallScore = &ext.OverallScore
		fm.ReporterReliability = &ext.ReporterReliability
		b.Overall = ext.OverallScore
		b.Reliability = ext.ReporterReliability
		b.FactChecks = ext.FactChecks
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(head)
	buf.WriteString("---\n\n")
	if err := compiled.Execute(&buf, b); err != nil {
		return "", err
	}
	return buf.String(), nil
}
