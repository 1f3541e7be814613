// Package ai implements the LLM collaborators: job posting parsing, resume
// generation and revision, and guided content edits. Providers are thin
// completion clients; all resume semantics live in the collaborator layer so
// swapping providers never changes behavior.
package ai

import (
	"context"
	"fmt"

	"github.com/amishk599/tailor/internal/config"
	"github.com/amishk599/tailor/internal/model"
)

// Request is one completion call. JSONResponse asks the provider to constrain
// output to a single JSON object where the API supports it.
type Request struct {
	System       string
	Prompt       string
	Temperature  float64
	JSONResponse bool
}

// Provider sends a completion request to an LLM and returns the raw text
// response. Used only by the collaborators; not exported to the rest of the
// system.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// NewProvider builds the provider for a model configuration. The credential
// is resolved from the environment up front so a missing key fails before
// any network call.
func NewProvider(mc model.ModelConfig) (Provider, error) {
	key, err := config.CredentialFor(mc.Provider)
	if err != nil {
		return nil, err
	}

	switch mc.Provider {
	case model.ProviderOpenAI:
		return NewOpenAIProvider(key, mc.ModelName), nil
	case model.ProviderAnthropic:
		return NewAnthropicProvider(key, mc.ModelName, nil), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", mc.Provider)
	}
}
