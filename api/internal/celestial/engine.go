package celestial

import (
	"context"
	"errors"
	"fmt"
)

// Engine answers one identification request against a hosted model.
type Engine interface {
	Name() string
	Identify(ctx context.Context, in IdentifyRequest) (Info, error)
}

type Engines struct {
	OpenAI Engine
	Gemini Engine
}

func (e *Engines) GetEngine(provider string) (Engine, error) {
	switch provider {
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil, errors.New("gpt engine not configured")
		}
		return e.OpenAI, nil
	case "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini engine not configured")
		}
		return e.Gemini, nil
	default:
		return nil, fmt.Errorf("unknown provider %q; use 'gpt' or 'gemini'", provider)
	}
}
