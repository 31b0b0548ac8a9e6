package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"chorechart/internal/model"
	"chorechart/internal/store"
	"chorechart/internal/websocket"
)

type UserHandler struct {
	users  *store.UserStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewUserHandler(us *store.UserStore, hub *websocket.Hub, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: us, hub: hub, logger: logger}
}

func (h *UserHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, errInvalidInput, "username is required")
		return
	}

	existing, err := h.users.GetByUsername(req.Username)
	if err != nil {
		h.logger.Error("check username", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to check username")
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, errConflict, "username already taken")
		return
	}

	user, err := h.users.Create(req.Username)
	if err != nil {
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to create user")
		return
	}

	h.broadcast(websocket.NewMessage("user", "created", user.ID, nil))

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		h.logger.Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid id")
		return
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, errNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update applies a partial profile edit. Absent fields keep their current
// value; username and point totals are never editable here.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid id")
		return
	}

	existing, err := h.users.GetByID(id)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to get user")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, errNotFound, "user not found")
		return
	}

	var req struct {
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		Pronouns       *string `json:"pronouns"`
		Email          *string `json:"email"`
		ProfilePicture *string `json:"profile_picture"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid JSON")
		return
	}

	firstName := existing.FirstName
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	lastName := existing.LastName
	if req.LastName != nil {
		lastName = *req.LastName
	}
	pronouns := existing.Pronouns
	if req.Pronouns != nil {
		pronouns = *req.Pronouns
	}
	email := existing.Email
	if req.Email != nil {
		email = *req.Email
	}
	profilePicture := existing.ProfilePicture
	if req.ProfilePicture != nil {
		profilePicture = *req.ProfilePicture
	}

	user, err := h.users.Update(id, firstName, lastName, pronouns, email, profilePicture)
	if err != nil {
		h.logger.Error("update user", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to update user")
		return
	}

	h.broadcast(websocket.NewMessage("user", "updated", id, nil))

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid id")
		return
	}

	found, err := h.users.Delete(id)
	if err != nil {
		h.logger.Error("delete user", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to delete user")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, errNotFound, "user not found")
		return
	}

	h.broadcast(websocket.NewMessage("user", "deleted", id, nil))

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
