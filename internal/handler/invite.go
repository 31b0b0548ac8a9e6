package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"chorechart/internal/email"
	"chorechart/internal/invite"
	"chorechart/internal/recurrence"
	"chorechart/internal/store"
	"chorechart/internal/websocket"
)

// InviteHandler dispatches calendar-invite emails for scheduled chores.
type InviteHandler struct {
	chores    *store.ChoreStore
	users     *store.UserStore
	schedules *store.ScheduleStore
	sender    *email.Sender
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewInviteHandler(cs *store.ChoreStore, us *store.UserStore, ss *store.ScheduleStore, sender *email.Sender, hub *websocket.Hub, logger *slog.Logger) *InviteHandler {
	return &InviteHandler{chores: cs, users: us, schedules: ss, sender: sender, hub: hub, logger: logger}
}

// Invite validates the request, builds the ICS artifact, records the
// schedule best-effort, and delivers through the channel chain. All
// validation happens before any side effect.
func (h *InviteHandler) Invite(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid id")
		return
	}

	var req struct {
		UserID     int64  `json:"user_id"`
		Datetime   string `json:"datetime"`
		Recurrence string `json:"recurrence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid JSON")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, errInvalidInput, "user_id is required")
		return
	}
	if req.Datetime == "" {
		writeError(w, http.StatusBadRequest, errInvalidInput, "datetime is required")
		return
	}

	start, err := invite.ParseStart(req.Datetime)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidInput, err.Error())
		return
	}

	chore, err := h.chores.GetByID(id)
	if err != nil {
		h.logger.Error("get chore", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to get chore")
		return
	}
	if chore == nil {
		writeError(w, http.StatusNotFound, errNotFound, "chore not found")
		return
	}

	user, err := h.users.GetByID(req.UserID)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, errNotFound, "user not found")
		return
	}
	if user.Email == "" {
		writeError(w, http.StatusBadRequest, errInvalidInput, "no contact address configured for this user")
		return
	}

	var rule *recurrence.Rule
	if rr, ok := recurrence.FromKind(req.Recurrence); ok {
		rule = &rr
	}

	event := invite.NewChoreEvent(chore, start, rule)
	ics := event.Serialize(time.Now())

	// Advisory record only; the invite is delivered either way.
	if _, err := h.schedules.Create(id, req.UserID, start); err != nil {
		h.logger.Warn("persist schedule", "chore_id", id, "user_id", req.UserID, "error", err)
	}

	textBody := fmt.Sprintf("Hello %s,\n\nPlease find attached a calendar invite for your chore: %s.", user.Username, chore.Title)
	htmlExtra := ""
	if rule != nil {
		textBody += "\n\n" + rule.Describe() + "."
		htmlExtra = fmt.Sprintf("<p>%s.</p>", rule.Describe())
	}
	htmlBody := fmt.Sprintf(
		"<html><body><p>Hello %s,</p><p>Please find attached a calendar invite for your chore: %s.</p>%s</body></html>",
		user.Username, chore.Title, htmlExtra,
	)

	channel, err := h.sender.Send(email.Message{
		To:             user.Email,
		ToName:         user.Username,
		Subject:        "Chore Reminder: " + chore.Title,
		TextBody:       textBody,
		HTMLBody:       htmlBody,
		AttachmentName: "invite.ics",
		AttachmentMIME: `text/calendar; method=REQUEST`,
		Attachment:     []byte(ics),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, errDeliveryFailed, "failed to send invite: "+err.Error())
		return
	}

	h.broadcast(websocket.NewMessage("invite", "sent", id, map[string]any{
		"user_id": req.UserID,
		"channel": channel,
	}))

	if channel == email.ChannelMock {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Calendar invite generated (but email config missing)"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Calendar invite sent to " + user.Email})
}

func (h *InviteHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}
