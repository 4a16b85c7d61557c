// Package api exposes the vocabulary over HTTP. Clients add words, which
// enqueues example generation, and read words back together with the
// examples the worker has produced so far.
package api
