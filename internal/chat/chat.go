package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Chat is an ordered conversation. It is not safe for concurrent use; build a
// fresh Chat per request.
type Chat struct {
	messages []Message
}

// New returns an empty conversation.
func New() *Chat {
	return &Chat{}
}

// AddSystemMessage appends a system instruction.
func (c *Chat) AddSystemMessage(content string) {
	c.add(RoleSystem, content)
}

// AddUserMessage appends a user turn.
func (c *Chat) AddUserMessage(content string) {
	c.add(RoleUser, content)
}

// AddAssistantMessage appends an assistant turn, typically used for few-shot examples.
func (c *Chat) AddAssistantMessage(content string) {
	c.add(RoleAssistant, content)
}

func (c *Chat) add(role Role, content string) {
	c.messages = append(c.messages, Message{Role: role, Content: content})
}

// Messages returns a copy of the accumulated messages in call order.
func (c *Chat) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Process sends the whole conversation through client and returns the text of
// the first choice.
func (c *Chat) Process(ctx context.Context, client Completer) (string, error) {
	req, err := c.buildRequest()
	if err != nil {
		return "", err
	}

	resp, err := client.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, ErrRequestBuild) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrService, err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrNoResponse
	}

	content := resp.Choices[0].Content
	if content == nil || strings.TrimSpace(*content) == "" {
		return "", ErrEmptyContent
	}

	return *content, nil
}

// buildRequest validates the conversation and copies it into a Request.
func (c *Chat) buildRequest() (Request, error) {
	if len(c.messages) == 0 {
		return Request{}, fmt.Errorf("%w: conversation has no messages", ErrRequestBuild)
	}

	for i, m := range c.messages {
		if !m.Role.Valid() {
			return Request{}, fmt.Errorf("%w: message %d has unknown role %q", ErrRequestBuild, i, m.Role)
		}
	}

	return Request{Messages: c.Messages()}, nil
}
