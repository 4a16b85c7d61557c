// Package gemini provides a chat.Completer backed by Google's Gemini API
// through the google.golang.org/genai client library.
//
// This package is an infrastructure adapter: it translates the application's
// provider-neutral conversation (system, user and assistant messages) into
// Gemini contents and maps Gemini candidates back into chat choices, without
// exposing genai types to the rest of the application.
package gemini
