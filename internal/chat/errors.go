package chat

import "errors"

// Errors returned by Chat.Process. They are never retried by this package.
var (
	// ErrService is returned when the completion service or its transport fails.
	ErrService = errors.New("completion service error")

	// ErrNoResponse is returned when the service returns zero choices.
	ErrNoResponse = errors.New("model returned no response")

	// ErrEmptyContent is returned when the first choice carries no text.
	ErrEmptyContent = errors.New("model returned response with empty content")

	// ErrRequestBuild is returned when the request cannot be constructed locally.
	ErrRequestBuild = errors.New("failed to build completion request")
)
