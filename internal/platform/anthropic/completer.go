package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/phrazzld/wordbank/internal/chat"
	"github.com/phrazzld/wordbank/internal/config"
	"github.com/phrazzld/wordbank/internal/generation"
)

// ErrNoConversation is returned when a request has no user or assistant turn to send.
var ErrNoConversation = errors.New("request has no user or assistant messages")

// messageCreator is the subset of sdk.MessageService used by the completer.
type messageCreator interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Completer implements chat.Completer using the Anthropic Messages API.
type Completer struct {
	messages    messageCreator
	model       string
	maxTokens   int64
	temperature float64
	logger      *slog.Logger
}

var _ chat.Completer = (*Completer)(nil)

// NewCompleter creates an Anthropic-backed completer from the LLM configuration.
// SDK retries are disabled; a failed call is reported to the caller as is.
func NewCompleter(logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be positive", generation.ErrInvalidConfig)
	}

	client := sdk.NewClient(
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		option.WithMaxRetries(0),
	)

	return newCompleter(&client.Messages, cfg, logger), nil
}

func newCompleter(messages messageCreator, cfg config.LLMConfig, logger *slog.Logger) *Completer {
	return &Completer{
		messages:    messages,
		model:       cfg.ModelName,
		maxTokens:   int64(cfg.MaxTokens),
		temperature: float64(cfg.Temperature),
		logger:      logger.With("component", "anthropic_completer", "model", cfg.ModelName),
	}
}

// Complete sends the conversation to Anthropic. The text blocks of the reply
// are joined into a single choice; a reply without content yields no choices.
func (c *Completer) Complete(ctx context.Context, req chat.Request) (*chat.Response, error) {
	params, err := c.buildParams(req)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "calling anthropic", "message_count", len(params.Messages))

	msg, err := c.messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic create message: %w", err)
	}

	if msg == nil || len(msg.Content) == 0 {
		return &chat.Response{}, nil
	}

	var b strings.Builder
	found := false
	for _, block := range msg.Content {
		if block.Type != "text" || block.Text == "" {
			continue
		}
		b.WriteString(block.Text)
		found = true
	}

	choice := chat.Choice{}
	if found {
		text := b.String()
		choice.Content = &text
	}

	c.logger.DebugContext(ctx, "anthropic call completed",
		"stop_reason", string(msg.StopReason),
		"block_count", len(msg.Content))

	return &chat.Response{Choices: []chat.Choice{choice}}, nil
}

func (c *Completer) buildParams(req chat.Request) (sdk.MessageNewParams, error) {
	params := sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: sdk.Float(c.temperature),
	}

	for i, m := range req.Messages {
		switch m.Role {
		case chat.RoleSystem:
			params.System = append(params.System, sdk.TextBlockParam{Text: m.Content})
		case chat.RoleUser:
			params.Messages = append(params.Messages, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		case chat.RoleAssistant:
			params.Messages = append(params.Messages, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		default:
			return sdk.MessageNewParams{}, fmt.Errorf("%w: message %d has unsupported role %q", chat.ErrRequestBuild, i, m.Role)
		}
	}

	if len(params.Messages) == 0 {
		return sdk.MessageNewParams{}, fmt.Errorf("%w: %w", chat.ErrRequestBuild, ErrNoConversation)
	}

	return params, nil
}
