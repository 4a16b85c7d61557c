package gemini

import "errors"

// ErrNoConversation is returned when a request has no user or assistant turn to send.
var ErrNoConversation = errors.New("request has no user or assistant messages")
