package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/wordbank/internal/api/shared"
	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/store"
)

// WordHandler handles word-related HTTP requests.
type WordHandler struct {
	words    store.WordStore
	examples store.ExampleStore
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(words store.WordStore, examples store.ExampleStore) *WordHandler {
	return &WordHandler{words: words, examples: examples}
}

// CreateWord handles POST /api/words. The word and its generation job are
// stored together; the example arrives later, so the response is 202.
func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req CreateWordRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	word, err := domain.NewWord(req.Word, req.Translation)
	if err != nil {
		h.respondWithStoreError(w, r, err)
		return
	}

	if err := h.words.CreateWithJob(r.Context(), word); err != nil {
		h.respondWithStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, wordToResponse(*word))
}

// ListWords handles GET /api/words.
//
// Query parameters: limit, offset and pending (bool).
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseWordFilter(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	words, err := h.words.List(r.Context(), filter)
	if err != nil {
		h.respondWithStoreError(w, r, err)
		return
	}

	resp := WordListResponse{
		Words:  make([]WordResponse, 0, len(words)),
		Limit:  filter.EffectiveLimit(),
		Offset: filter.Offset,
	}
	for _, word := range words {
		resp.Words = append(resp.Words, wordToResponse(word))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetWord handles GET /api/words/{id}.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	detail, err := h.wordDetail(r.Context(), id)
	if err != nil {
		h.respondWithStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, detail)
}

func (h *WordHandler) wordDetail(ctx context.Context, id int64) (*WordDetailResponse, error) {
	word, err := h.words.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	examples, err := h.examples.ListByWord(ctx, id)
	if err != nil {
		return nil, err
	}

	pending, err := h.words.IsPending(ctx, id)
	if err != nil {
		return nil, err
	}

	return &WordDetailResponse{
		WordResponse: wordToResponse(*word),
		Pending:      pending,
		Examples:     examplesToResponse(examples),
	}, nil
}

func (h *WordHandler) respondWithStoreError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

var (
	errInvalidLimit   = errors.New("limit must be a positive integer")
	errInvalidOffset  = errors.New("offset must be a non-negative integer")
	errInvalidPending = errors.New("pending must be a boolean")
)

func parseWordFilter(r *http.Request) (store.WordFilter, error) {
	var filter store.WordFilter
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return filter, errInvalidLimit
		}
		filter.Limit = n
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errInvalidOffset
		}
		filter.Offset = n
	}

	if v := q.Get("pending"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errInvalidPending
		}
		filter.PendingOnly = b
	}

	return filter, nil
}
