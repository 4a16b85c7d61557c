package api

import (
	"time"

	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/task"
)

// CreateWordRequest is the body of POST /api/words.
type CreateWordRequest struct {
	Word        string `json:"word"        validate:"required,max=200"`
	Translation string `json:"translation" validate:"required,max=200"`
}

// WordResponse is the API view of a word.
type WordResponse struct {
	ID          int64     `json:"id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExampleResponse is the API view of a generated example.
type ExampleResponse struct {
	ID          int64     `json:"id"`
	Example     string    `json:"example"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}

// WordDetailResponse is returned by GET /api/words/{id}.
type WordDetailResponse struct {
	WordResponse
	Pending  bool              `json:"pending"`
	Examples []ExampleResponse `json:"examples"`
}

// WordListResponse is returned by GET /api/words.
type WordListResponse struct {
	Words  []WordResponse `json:"words"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// QueueStatusResponse is returned by GET /api/queue.
type QueueStatusResponse struct {
	Pending int                 `json:"pending"`
	Worker  *task.StatsSnapshot `json:"worker,omitempty"`
}

func wordToResponse(w domain.Word) WordResponse {
	return WordResponse{
		ID:          w.ID,
		Word:        w.Text,
		Translation: w.Translation,
		CreatedAt:   w.CreatedAt,
	}
}

func examplesToResponse(examples []domain.Example) []ExampleResponse {
	out := make([]ExampleResponse, 0, len(examples))
	for _, e := range examples {
		out = append(out, ExampleResponse{
			ID:          e.ID,
			Example:     e.Sentence,
			Translation: e.Translation,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
