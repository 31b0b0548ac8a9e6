package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"chorechart/internal/model"
	"chorechart/internal/stats"
	"chorechart/internal/store"
)

type StatsHandler struct {
	ledger *store.LedgerStore
	users  *store.UserStore
	logger *slog.Logger
}

func NewStatsHandler(ls *store.LedgerStore, us *store.UserStore, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{ledger: ls, users: us, logger: logger}
}

// History returns the completion ledger newest-first, paginated. An
// out-of-range page yields an empty list, not an error.
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	total, err := h.ledger.CountLogs()
	if err != nil {
		h.logger.Error("count logs", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to load history")
		return
	}

	limit, offset, meta := stats.Paginate(total, page, perPage)

	logs, err := h.ledger.ListLogsPage(limit, offset)
	if err != nil {
		h.logger.Error("list logs", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to load history")
		return
	}
	if logs == nil {
		logs = []model.ChoreLog{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"logs":     logs,
		"total":    meta.Total,
		"pages":    meta.Pages,
		"page":     meta.Page,
		"per_page": meta.PerPage,
		"has_next": meta.HasNext,
		"has_prev": meta.HasPrev,
	})
}

// Charts returns the point distribution and the trailing 7-day activity
// timeline.
func (h *StatsHandler) Charts(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListWithPoints()
	if err != nil {
		h.logger.Error("list users with points", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to load charts")
		return
	}

	now := time.Now().UTC()
	logs, err := h.ledger.ListLogsSince(now.Add(-stats.TimelineWindow))
	if err != nil {
		h.logger.Error("list logs", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to load charts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"distribution": stats.Distribution(users),
		"timeline":     stats.BuildTimeline(logs, now),
	})
}
