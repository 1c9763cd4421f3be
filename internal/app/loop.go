package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/rs/zerolog/log"
)

// State of the commit loop.
type State int

const (
	StateGenerating State = iota
	StatePresented
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	case StatePresented:
		return "presented"
	case StateCommitted:
		return "committed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Decision is the user's answer to a presented message.
type Decision int

const (
	DecisionRegenerate Decision = iota
	DecisionAccept
	DecisionEdit
)

// ParseDecision reads an answer case-insensitively. Anything that is not
// "y" or "e" asks for a new message.
func ParseDecision(answer string) Decision {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y":
		return DecisionAccept
	case "e":
		return DecisionEdit
	default:
		return DecisionRegenerate
	}
}

// transition is the loop's table: a presented message either ends in a
// commit or goes back to generation.
var transition = map[Decision]State{
	DecisionAccept:     StateCommitted,
	DecisionEdit:       StateCommitted,
	DecisionRegenerate: StateGenerating,
}

type Generator interface {
	Generate(ctx context.Context, title, diff string) (string, error)
}

type Committer interface {
	Commit(ctx context.Context, message string) error
}

// Prompter shows messages and collects answers.
type Prompter interface {
	// Confirm presents message and returns the raw answer.
	Confirm(message string) (string, error)
	// Edit returns the replacement message typed by the user.
	Edit(message string) (string, error)
}

// Loop drives generate, present, commit until the user accepts or edits.
type Loop struct {
	Generator Generator
	Committer Committer
	Prompter  Prompter
	Out       io.Writer

	// Busy, when set, is called around each generation; the returned func
	// is called once it finishes.
	Busy func() func()
}

func (l *Loop) Run(ctx context.Context, title, diff string) error {
	state := StateGenerating
	var msg string

	for state != StateCommitted {
		log.Debug().Stringer("state", state).Msg("commit loop")

		switch state {
		case StateGenerating:
			var err error
			msg, err = l.generate(ctx, title, diff)
			if err != nil {
				return err
			}
			state = StatePresented

		case StatePresented:
			answer, err := l.Prompter.Confirm(msg)
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}

			d := ParseDecision(answer)
			switch d {
			case DecisionEdit:
				edited, err := l.Prompter.Edit(msg)
				if err != nil {
					return fmt.Errorf("read edited message: %w", err)
				}
				msg = edited
			case DecisionRegenerate:
				fmt.Fprintln(l.Out, "Regenerating commit message...")
			}

			if d != DecisionRegenerate {
				if err := l.Committer.Commit(ctx, msg); err != nil {
					return err
				}
				fmt.Fprintln(l.Out, "Changes committed!")
			}
			state = transition[d]
		}
	}
	return nil
}

// generate never fails on a bad backend reply: the failure message is
// presented instead and the user can regenerate. Only cancellation ends
// the loop.
func (l *Loop) generate(ctx context.Context, title, diff string) (string, error) {
	if l.Busy != nil {
		done := l.Busy()
		defer done()
	}

	msg, err := l.Generator.Generate(ctx, title, diff)
	if err == nil {
		return msg, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	var genErr *ai.GenerationError
	if errors.As(err, &genErr) {
		log.Debug().Str("raw", genErr.Raw).Msg("unparsable model output")
	}
	log.Warn().Err(err).Msg("commit message generation failed")
	return ai.FailureMessage, nil
}
