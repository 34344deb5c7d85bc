package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"garim-lab/internal/model"
)

// Options configures an Analyzer.
type Options struct {
	Dial     Dialer
	Prefer   string        // substring of the preferred model name, e.g. "flash"
	Language string        // reply language
	Shape    Shape         // requested report layout
	Timeout  time.Duration // bound on one Analyze call
}

// Analyzer asks a generative-language service for a bias / fact-check report on one headline.
type Analyzer struct {
	dial     Dialer
	prefer   string
	language string
	shape    Shape
	timeout  time.Duration

	mu     sync.Mutex
	chosen map[string]string // credential fingerprint -> model name
}

// New creates an Analyzer. A zero Timeout means 60 seconds.
func New(opts Options) *Analyzer {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Shape == "" {
		opts.Shape = ShapeExtended
	}
	return &Analyzer{
		dial:     opts.Dial,
		prefer:   opts.Prefer,
		language: opts.Language,
		shape:    opts.Shape,
		timeout:  opts.Timeout,
		chosen:   map[string]string{},
	}
}

// Analyze validates the credential, picks a model and requests one report.
// Errors are always *Error.
func (a *Analyzer) Analyze(ctx context.Context, title, source, credential string) (model.Analysis, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return model.Analysis{}, &Error{Kind: KindAuthFailure, Detail: "missing credential"}
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	p, err := a.dial(ctx, credential)
	if err != nil {
		return model.Analysis{}, classify(err, KindAuthFailure)
	}
	modelName, err := a.modelFor(ctx, p, credential)
	if err != nil {
		return model.Analysis{}, err
	}

	prompt := BuildPrompt(a.shape, title, source, a.language)
	start := time.Now()
	raw, err := p.Generate(ctx, modelName, prompt)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			a.forget(credential)
		}
		slog.Error("ai: generate error", "model", modelName, "err", err)
		return model.Analysis{}, classify(err, KindUpstream)
	}
	slog.Info("ai: generated", "model", modelName, "elapsed", time.Since(start).Round(time.Millisecond))
	return Parse(raw)
}

// SelectModel runs capability discovery with p and applies the preference rule.
func (a *Analyzer) SelectModel(ctx context.Context, p Provider) (string, error) {
	models, err := p.ListModels(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return "", classify(err, KindAuthFailure)
		}
		return "", classify(err, KindUpstream)
	}
	name, ok := ChooseModel(models, a.prefer)
	if !ok {
		return "", &Error{Kind: KindNoModelAvailable, Detail: "the service advertises no content generation model"}
	}
	return name, nil
}

func (a *Analyzer) modelFor(ctx context.Context, p Provider, credential string) (string, error) {
	fp := fingerprint(credential)
	a.mu.Lock()
	name, ok := a.chosen[fp]
	a.mu.Unlock()
	if ok {
		return name, nil
	}
	name, err := a.SelectModel(ctx, p)
	if err != nil {
		return "", err
	}
	a.mu.Lock()
	a.chosen[fp] = name
	a.mu.Unlock()
	slog.Info("ai: model selected", "model", name)
	return name, nil
}

func (a *Analyzer) forget(credential string) {
	a.mu.Lock()
	delete(a.chosen, fingerprint(credential))
	a.mu.Unlock()
}

// ChooseModel returns the first capable model whose name contains prefer,
// else the first capable model.
func ChooseModel(models []ModelInfo, prefer string) (string, bool) {
	first := ""
	for _, m := range models {
		if !m.CanGenerate || m.Name == "" {
			continue
		}
		if prefer != "" && strings.Contains(m.Name, prefer) {
			return m.Name, true
		}
		if first == "" {
			first = m.Name
		}
	}
	return first, first != ""
}

func fingerprint(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}

// classify wraps err into an *Error, mapping auth and deadline failures.
func classify(err error, fallback ErrorKind) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	kind := fallback
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.Is(err, ErrUnauthorized):
		kind = KindAuthFailure
	}
	return &Error{Kind: kind, Detail: err.Error(), Err: err}
}
