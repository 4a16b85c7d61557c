package chat

import "context"

// Request is the provider-neutral completion request built from a Chat.
type Request struct {
	Messages []Message
}

// Choice is one candidate reply. Content is nil when the provider returned a
// candidate without any text.
type Choice struct {
	Content *string
}

// Response is the provider-neutral completion response.
type Response struct {
	Choices []Choice
}

// Completer sends a completion request to a language model service.
//
// Implementations return an error wrapping ErrRequestBuild when the request
// cannot be translated into the provider's format; any other error is
// treated as a service failure.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (*Response, error)

// Complete calls f(ctx, req).
func (f CompleterFunc) Complete(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
