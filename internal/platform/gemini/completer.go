package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/wordbank/internal/chat"
	"github.com/phrazzld/wordbank/internal/config"
	"github.com/phrazzld/wordbank/internal/generation"
	"google.golang.org/genai"
)

// Gemini content roles
const (
	roleUser  = "user"
	roleModel = "model"
)

// contentGenerator is the subset of *genai.Models used by the completer.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Completer implements chat.Completer using the Gemini API.
type Completer struct {
	models      contentGenerator
	model       string
	temperature float32
	logger      *slog.Logger
}

var _ chat.Completer = (*Completer)(nil)

// NewCompleter creates a Gemini-backed completer from the LLM configuration.
// The HTTP client timeout bounds every call; there is no other per-call deadline.
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newCompleter(client.Models, cfg, logger), nil
}

func newCompleter(models contentGenerator, cfg config.LLMConfig, logger *slog.Logger) *Completer {
	return &Completer{
		models:      models,
		model:       cfg.ModelName,
		temperature: cfg.Temperature,
		logger:      logger.With("component", "gemini_completer", "model", cfg.ModelName),
	}
}

// Complete sends the conversation to Gemini and returns its candidates as choices.
func (c *Completer) Complete(ctx context.Context, req chat.Request) (*chat.Response, error) {
	contents, genConfig, err := c.buildContents(req)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "calling gemini", "content_count", len(contents))

	resp, err := c.models.GenerateContent(ctx, c.model, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	if resp == nil {
		return &chat.Response{}, nil
	}

	if reason := blockReason(resp.PromptFeedback); reason != "" {
		return nil, fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, reason)
	}

	// Only the first candidate is ever read, so a blocked alternative is not fatal.
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil &&
		resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: candidate 0", generation.ErrContentBlocked)
	}

	choices := make([]chat.Choice, 0, len(resp.Candidates))
	for _, candidate := range resp.Candidates {
		if candidate == nil {
			choices = append(choices, chat.Choice{})
			continue
		}
		choices = append(choices, chat.Choice{Content: candidateText(candidate)})
	}

	c.logger.DebugContext(ctx, "gemini call completed", "candidate_count", len(choices))

	return &chat.Response{Choices: choices}, nil
}

// blockReason returns why the prompt itself was rejected, or "" when it was not.
func blockReason(feedback *genai.GenerateContentResponsePromptFeedback) string {
	if feedback == nil || feedback.BlockReason == "" {
		return ""
	}
	if feedback.BlockReasonMessage != "" {
		return feedback.BlockReasonMessage
	}
	return string(feedback.BlockReason)
}

// buildContents maps chat messages to Gemini contents. System messages are
// joined into the system instruction.
func (c *Completer) buildContents(req chat.Request) ([]*genai.Content, *genai.GenerateContentConfig, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))

	for i, m := range req.Messages {
		switch m.Role {
		case chat.RoleSystem:
			system = append(system, m.Content)
		case chat.RoleUser:
			contents = append(contents, textContent(roleUser, m.Content))
		case chat.RoleAssistant:
			contents = append(contents, textContent(roleModel, m.Content))
		default:
			return nil, nil, fmt.Errorf("%w: message %d has unsupported role %q", chat.ErrRequestBuild, i, m.Role)
		}
	}

	if len(contents) == 0 {
		return nil, nil, fmt.Errorf("%w: %w", chat.ErrRequestBuild, ErrNoConversation)
	}

	temperature := c.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if len(system) > 0 {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}},
		}
	}

	return contents, genConfig, nil
}

func textContent(role, text string) *genai.Content {
	return &genai.Content{
		Role:  role,
		Parts: []*genai.Part{{Text: text}},
	}
}

// candidateText concatenates the text parts of a candidate. It returns nil
// when the candidate carries no text at all.
func candidateText(candidate *genai.Candidate) *string {
	if candidate.Content == nil {
		return nil
	}

	var b strings.Builder
	found := false
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
		found = true
	}

	if !found {
		return nil
	}

	text := b.String()
	return &text
}
