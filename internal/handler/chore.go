package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"chorechart/internal/model"
	"chorechart/internal/store"
	"chorechart/internal/websocket"
)

type ChoreHandler struct {
	chores *store.ChoreStore
	ledger *store.LedgerStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewChoreHandler(cs *store.ChoreStore, ls *store.LedgerStore, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{chores: cs, ledger: ls, hub: hub, logger: logger}
}

func (h *ChoreHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Location    string `json:"location"`
		Points      int    `json:"points"`
		IsRecurring bool   `json:"is_recurring"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, errInvalidInput, "title is required")
		return
	}
	if req.Points <= 0 {
		writeError(w, http.StatusBadRequest, errInvalidInput, "points must be a positive integer")
		return
	}

	chore, err := h.chores.Create(req.Title, req.Description, req.Location, req.Points, req.IsRecurring)
	if err != nil {
		h.logger.Error("create chore", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to create chore")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "created", chore.ID, nil))

	writeJSON(w, http.StatusCreated, chore)
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	chores, err := h.chores.ListActive()
	if err != nil {
		h.logger.Error("list chores", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to list chores")
		return
	}
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}

// Update applies a partial edit. Absent fields keep their current value.
// Retired chores stay editable; editing never touches ledger history.
func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid id")
		return
	}

	existing, err := h.chores.GetByID(id)
	if err != nil {
		h.logger.Error("get chore", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to get chore")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, errNotFound, "chore not found")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Location    *string `json:"location"`
		Points      *int    `json:"points"`
		IsRecurring *bool   `json:"is_recurring"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid JSON")
		return
	}

	title := existing.Title
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}
	if title == "" {
		writeError(w, http.StatusBadRequest, errInvalidInput, "title is required")
		return
	}

	points := existing.Points
	if req.Points != nil {
		points = *req.Points
	}
	if points <= 0 {
		writeError(w, http.StatusBadRequest, errInvalidInput, "points must be a positive integer")
		return
	}

	description := existing.Description
	if req.Description != nil {
		description = *req.Description
	}
	location := existing.Location
	if req.Location != nil {
		location = *req.Location
	}
	recurring := existing.IsRecurring
	if req.IsRecurring != nil {
		recurring = *req.IsRecurring
	}

	chore, err := h.chores.Update(id, title, description, location, points, recurring)
	if err != nil {
		h.logger.Error("update chore", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to update chore")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "updated", id, nil))

	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid id")
		return
	}

	found, err := h.chores.Retire(id)
	if err != nil {
		h.logger.Error("retire chore", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to delete chore")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, errNotFound, "chore not found")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "deleted", id, nil))

	writeJSON(w, http.StatusOK, map[string]string{"message": "Chore deleted"})
}

// Complete records a completion in the points ledger. A non-recurring chore
// is retired by the same transaction; completing it again is a 404.
func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid id")
		return
	}

	var req struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid JSON")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, errInvalidInput, "user_id is required")
		return
	}

	result, err := h.ledger.RecordCompletion(id, req.UserID)
	switch {
	case errors.Is(err, store.ErrChoreNotFound):
		writeError(w, http.StatusNotFound, errNotFound, "chore not found")
		return
	case errors.Is(err, store.ErrChoreRetired):
		writeError(w, http.StatusNotFound, errNotFound, "chore already retired")
		return
	case errors.Is(err, store.ErrUserNotFound):
		writeError(w, http.StatusNotFound, errNotFound, "user not found")
		return
	case err != nil:
		h.logger.Error("record completion", "chore_id", id, "user_id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to complete chore")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "completed", id, map[string]any{
		"user_id":       req.UserID,
		"points_earned": result.Entry.PointsEarned,
		"user_total":    result.UserTotal,
	}))

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Chore completed",
		"points_earned": result.Entry.PointsEarned,
		"user_total":    result.UserTotal,
	})
}
