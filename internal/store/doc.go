// Package store defines the persistence contracts for words, examples and the
// example generation queue. These interfaces keep the worker and the HTTP
// handlers independent of PostgreSQL, which lives in internal/platform/postgres.
package store
