// Package chat provides a provider-neutral conversation builder for large
// language models. A Chat accumulates role-tagged messages in order and sends
// them through a Completer, returning the text of the first choice.
//
// Provider adapters (Gemini, Anthropic) live under internal/platform and
// translate a Request into the provider's wire format. The failure taxonomy
// (ErrService, ErrNoResponse, ErrEmptyContent, ErrRequestBuild) is applied
// here so every provider reports failures the same way.
package chat
