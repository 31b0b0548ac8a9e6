package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"chorechart/internal/model"
)

func newUserHandler(env *testEnv) *UserHandler {
	return NewUserHandler(env.users, nil, discardLogger())
}

func TestUserCreate(t *testing.T) {
	h := newUserHandler(newTestEnv(t))

	rec := doJSON(t, h.Create, "POST", "/api/users", map[string]any{"username": "alice"}, 0)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var user model.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatal(err)
	}
	if user.Username != "alice" || user.TotalPoints != 0 {
		t.Errorf("user = %+v", user)
	}
}

func TestUserCreateMissingUsername(t *testing.T) {
	h := newUserHandler(newTestEnv(t))

	rec := doJSON(t, h.Create, "POST", "/api/users", map[string]any{"username": "  "}, 0)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeMap(t, rec)["error"]; got != "invalid_input" {
		t.Errorf("error kind = %v", got)
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	env := newTestEnv(t)
	h := newUserHandler(env)

	if _, err := env.users.Create("alice"); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, h.Create, "POST", "/api/users", map[string]any{"username": "alice"}, 0)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeMap(t, rec)["error"]; got != "conflict" {
		t.Errorf("error kind = %v, want conflict", got)
	}
}

func TestUserGet(t *testing.T) {
	env := newTestEnv(t)
	h := newUserHandler(env)

	user, err := env.users.Create("alice")
	if err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, h.Get, "GET", "/api/users/1", nil, user.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, h.Get, "GET", "/api/users/99", nil, 99)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestUserUpdatePartial(t *testing.T) {
	env := newTestEnv(t)
	h := newUserHandler(env)

	user, err := env.users.Create("alice")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.users.Update(user.ID, "Alice", "Smith", "she/her", "alice@example.com", ""); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, h.Update, "PUT", "/api/users/1", map[string]any{"pronouns": "they/them"}, user.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var updated model.User
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Pronouns != "they/them" {
		t.Errorf("pronouns = %q", updated.Pronouns)
	}
	if updated.FirstName != "Alice" || updated.Email != "alice@example.com" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.Username != "alice" {
		t.Errorf("username must not be editable, got %q", updated.Username)
	}
}

func TestUserDelete(t *testing.T) {
	env := newTestEnv(t)
	h := newUserHandler(env)

	user, err := env.users.Create("alice")
	if err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, h.Delete, "DELETE", "/api/users/1", nil, user.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeMap(t, rec)["message"]; got != "User deleted" {
		t.Errorf("message = %v", got)
	}

	rec = doJSON(t, h.Delete, "DELETE", "/api/users/1", nil, user.ID)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestUserList(t *testing.T) {
	env := newTestEnv(t)
	h := newUserHandler(env)

	rec := doJSON(t, h.List, "GET", "/api/users", nil, 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() == "null\n" {
		t.Error("empty list should encode as [], not null")
	}
}
