// Package tokenizer estimates token counts for embedded file text.
package tokenizer

import (
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultModelName is the tokenizer model used when the caller does not pick one.
const DefaultModelName = "gpt-4o"

// Counter estimates how many tokens a string encodes to for a given model.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewCounter resolves a counter for the named model, falling back to
// DefaultModelName when modelName is empty.
func NewCounter(modelName string) (Counter, error) {
	resolvedModelName := modelName
	if resolvedModelName == "" {
		resolvedModelName = DefaultModelName
	}
	encoding, encodingError := tiktoken.EncodingForModel(resolvedModelName)
	if encodingError != nil {
		return nil, fmt.Errorf("resolve tokenizer for model %s: %w", resolvedModelName, encodingError)
	}
	return openAICounter{encoding: encoding, name: resolvedModelName}, nil
}

func (counter openAICounter) Name() string {
	return counter.name
}

func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
