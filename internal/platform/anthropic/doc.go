// Package anthropic provides a chat.Completer backed by the Anthropic
// Messages API through github.com/anthropics/anthropic-sdk-go.
package anthropic
