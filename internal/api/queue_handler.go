package api

import (
	"net/http"

	"github.com/phrazzld/wordbank/internal/api/shared"
	"github.com/phrazzld/wordbank/internal/store"
	"github.com/phrazzld/wordbank/internal/task"
)

// StatsSource reports worker activity.
type StatsSource interface {
	Stats() task.StatsSnapshot
}

// QueueHandler reports on the example generation queue.
type QueueHandler struct {
	queue store.QueueStore
	stats StatsSource
}

// NewQueueHandler creates a QueueHandler. stats may be nil when the
// worker is disabled.
func NewQueueHandler(queue store.QueueStore, stats StatsSource) *QueueHandler {
	return &QueueHandler{queue: queue, stats: stats}
}

// GetStatus handles GET /api/queue.
func (h *QueueHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	pending, err := h.queue.CountPending(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to read queue status", err)
		return
	}

	resp := QueueStatusResponse{Pending: pending}
	if h.stats != nil {
		snapshot := h.stats.Stats()
		resp.Worker = &snapshot
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
