// Package domain contains the core vocabulary entities (words, generated
// examples and pending example-generation jobs) together with their
// validation rules. It is independent of any storage or delivery mechanism.
package domain
