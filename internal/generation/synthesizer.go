package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/wordbank/internal/chat"
	"github.com/phrazzld/wordbank/internal/domain"
)

// expectedLines is the number of lines in a valid reply: sentence, then translation.
const expectedLines = 2

// Synthesizer generates example sentences for words using a chat completer.
type Synthesizer struct {
	completer chat.Completer
	logger    *slog.Logger
}

// NewSynthesizer creates a Synthesizer that sends its prompts to completer.
func NewSynthesizer(completer chat.Completer, logger *slog.Logger) (*Synthesizer, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Synthesizer{
		completer: completer,
		logger:    logger.With("component", "example_synthesizer"),
	}, nil
}

// GenerateExample asks the language model for one example sentence using word
// and its translation. Every call starts a fresh conversation.
//
// Chat failures are wrapped with ErrGenerationFailed. A reply that is not exactly
// two non-empty lines yields an *InvalidResponseShapeError.
func (s *Synthesizer) GenerateExample(ctx context.Context, word domain.Word) (string, string, error) {
	conversation := Conversation(word)

	reply, err := conversation.Process(ctx, s.completer)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	sentence, translation, err := parseReply(reply)
	if err != nil {
		s.logger.DebugContext(ctx, "model reply rejected",
			"word_id", word.ID,
			"reply_length", len(reply),
			"error", err)
		return "", "", err
	}

	return sentence, translation, nil
}

// Conversation builds the chat sent for word: the system prompt followed by
// a single user turn.
func Conversation(word domain.Word) *chat.Chat {
	c := chat.New()
	c.AddSystemMessage(systemPrompt)
	c.AddUserMessage(userPrompt(word.Text, word.Translation))
	return c
}

// parseReply splits reply into its sentence and translation lines.
//
// A single trailing line break is ignored. Blank lines inside the reply count
// towards the line total, so "a\n\nb" is three lines.
func parseReply(reply string) (string, string, error) {
	reply = strings.TrimSuffix(reply, "\n")
	reply = strings.TrimSuffix(reply, "\r")

	lines := strings.Split(reply, "\n")
	if len(lines) != expectedLines {
		return "", "", &InvalidResponseShapeError{LineCount: len(lines)}
	}

	sentence := strings.TrimSpace(strings.TrimSuffix(lines[0], "\r"))
	translation := strings.TrimSpace(strings.TrimSuffix(lines[1], "\r"))
	if sentence == "" || translation == "" {
		return "", "", &InvalidResponseShapeError{LineCount: len(lines)}
	}

	return sentence, translation, nil
}
