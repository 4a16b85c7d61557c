package mocks

import (
	"context"

	"github.com/phrazzld/wordbank/internal/chat"
	"github.com/stretchr/testify/mock"
)

// MockCompleter is a testify mock of chat.Completer.
type MockCompleter struct {
	mock.Mock
}

var _ chat.Completer = (*MockCompleter)(nil)

// Complete records the call and returns the configured response.
func (m *MockCompleter) Complete(ctx context.Context, req chat.Request) (*chat.Response, error) {
	args := m.Called(ctx, req)

	var resp *chat.Response
	if v := args.Get(0); v != nil {
		resp = v.(*chat.Response)
	}

	return resp, args.Error(1)
}

// TextResponse builds a single-choice response carrying text.
func TextResponse(text string) *chat.Response {
	return &chat.Response{Choices: []chat.Choice{{Content: &text}}}
}
