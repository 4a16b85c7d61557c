package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/wordbank/internal/domain"
)

// MockExampleGenerator implements task.ExampleGenerator for testing.
type MockExampleGenerator struct {
	// GenerateExampleFn allows test cases to mock the GenerateExample behavior
	GenerateExampleFn func(ctx context.Context, word domain.Word) (string, string, error)

	// Default response values
	Sentence    string
	Translation string
	Err         error

	mu    sync.Mutex
	words []domain.Word
}

// GenerateExample records the word and returns the configured result.
func (m *MockExampleGenerator) GenerateExample(ctx context.Context, word domain.Word) (string, string, error) {
	m.mu.Lock()
	m.words = append(m.words, word)
	m.mu.Unlock()

	if m.GenerateExampleFn != nil {
		return m.GenerateExampleFn(ctx, word)
	}
	return m.Sentence, m.Translation, m.Err
}

// Words returns the words passed to GenerateExample, in call order.
func (m *MockExampleGenerator) Words() []domain.Word {
	m.mu.Lock()
	defer m.mu.Unlock()

	words := make([]domain.Word, len(m.words))
	copy(words, m.words)
	return words
}

// CallCount returns how many times GenerateExample was called.
func (m *MockExampleGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.words)
}

// NewMockExampleGenerator creates a generator that always succeeds with a fixed pair.
func NewMockExampleGenerator(sentence, translation string) *MockExampleGenerator {
	return &MockExampleGenerator{Sentence: sentence, Translation: translation}
}

// NewMockExampleGeneratorWithError creates a generator that always fails with err.
func NewMockExampleGeneratorWithError(err error) *MockExampleGenerator {
	return &MockExampleGenerator{Err: err}
}
