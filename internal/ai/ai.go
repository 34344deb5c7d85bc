package ai

import (
	"context"
	"errors"
	"fmt"
)

// ModelInfo is one entry of a provider's advertised model list.
type ModelInfo struct {
	Name        string
	CanGenerate bool
}

// Provider is a generative-language service bound to one credential.
type Provider interface {
	// ListModels returns the advertised models. It also serves as the credential check.
	ListModels(ctx context.Context) ([]ModelInfo, error)
	// Generate sends one prompt to model and returns the raw text reply.
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Dialer builds a Provider for a credential.
type Dialer func(ctx context.Context, credential string) (Provider, error)

// ErrUnauthorized is wrapped by providers when the service rejects the credential.
var ErrUnauthorized = errors.New("credential rejected")

// ErrorKind classifies analysis failures.
type ErrorKind int

const (
	KindAuthFailure ErrorKind = iota + 1
	KindNoModelAvailable
	KindMalformedResponse
	KindTimeout
	KindUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthFailure:
		return "auth failure"
	case KindNoModelAvailable:
		return "no model available"
	case KindMalformedResponse:
		return "malformed response"
	case KindTimeout:
		return "timeout"
	case KindUpstream:
		return "upstream error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the failure type returned by Analyzer.Analyze.
// Detail carries the provider message or the raw reply and is meant to be shown to the visitor.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "ai: " + e.Kind.String()
	}
	return fmt.Sprintf("ai: %s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of an analysis error, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
