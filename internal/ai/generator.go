package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoanghonghuy/aicommit/internal/prompt"
	"github.com/rs/zerolog/log"
)

// FailureMessage is presented in place of a commit message when the backend
// could not produce one.
const FailureMessage = "模型调用失败，请检查模型是否可用！"

// GenerationError reports a backend reply that could not be turned into a
// commit message.
type GenerationError struct {
	Raw string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("unexpected model output: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generator turns a title and a staged diff into a commit message.
type Generator struct {
	provider Provider
}

func NewGenerator(p Provider) *Generator {
	return &Generator{provider: p}
}

// Generate formats the prompt, asks the provider and extracts the summary.
// An incomplete backend call is not an error: FailureMessage is returned
// instead so the user can decide what to do with it.
func (g *Generator) Generate(ctx context.Context, title, diff string) (string, error) {
	p := prompt.Build(title, diff)
	log.Debug().Int("prompt_len", len(p)).Msg("sending prompt")

	raw, err := g.provider.Complete(ctx, p)
	if errors.Is(err, ErrIncomplete) {
		log.Warn().Msg("backend reported an incomplete response")
		return FailureMessage, nil
	}
	if err != nil {
		return "", err
	}

	msg, err := prompt.ParseSummary(raw)
	if err != nil {
		return "", &GenerationError{Raw: raw, Err: err}
	}
	return msg, nil
}
