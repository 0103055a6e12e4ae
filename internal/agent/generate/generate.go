// Package generate wraps the text-completion capability the intake
// stages call for their conversational replies. Failures are returned
// to the caller; each stage picks its own fallback utterance, so the
// wrapper never substitutes text itself.
package generate

import (
	"context"

	"github.com/tdh-assistant/server/internal/agent/model"
)

// FallbackReply is the fixed apology used by stages that have no better
// context-specific fallback when generation fails.
const FallbackReply = "I apologize, but I'm having trouble processing that. Could you please rephrase?"

// Request is one generation call: stage instructions, prior history and
// the latest user text. Stage-specific variables are rendered into
// System by the prompts package before the call.
type Request struct {
	System   string
	History  []model.Utterance
	UserText string
}

// Generator is the text-completion contract. One attempt, bounded by the
// implementation's timeout; no retry policy beyond the caller's single
// fallback level.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
