package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider defines the interface for an AI backend (e.g. Ollama, Zhipu)
type Provider interface {
	// Complete sends the prompt to the model and returns the raw reply content.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrIncomplete is returned by a Provider when the backend reports that the
// call did not finish.
var ErrIncomplete = errors.New("model call did not complete")

// Backend selects which Provider serves the run.
type Backend int

const (
	Ollama Backend = iota
	Zhipu
)

// Backends lists every supported backend in flag order.
var Backends = []Backend{Ollama, Zhipu}

func (b Backend) String() string {
	switch b {
	case Ollama:
		return "ollama"
	case Zhipu:
		return "zhipu"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend maps a flag value to a Backend. An empty value selects Ollama.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ollama", "":
		return Ollama, nil
	case "zhipu":
		return Zhipu, nil
	default:
		return 0, fmt.Errorf("unknown api: %s (supported: ollama, zhipu)", s)
	}
}
