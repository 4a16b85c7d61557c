// Package generation turns a vocabulary word into a single example sentence
// with its translation by prompting a language model through the chat client.
//
// The Synthesizer owns the fixed prompt and the validation of the model's
// reply. It does not retry: a failed synthesis is reported to the caller,
// which decides whether to try again on a later cycle.
package generation
