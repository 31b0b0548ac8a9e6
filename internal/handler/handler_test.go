package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"chorechart/internal/database"
	"chorechart/internal/store"
)

type testEnv struct {
	chores    *store.ChoreStore
	users     *store.UserStore
	ledger    *store.LedgerStore
	schedules *store.ScheduleStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &testEnv{
		chores:    store.NewChoreStore(db),
		users:     store.NewUserStore(db),
		ledger:    store.NewLedgerStore(db),
		schedules: store.NewScheduleStore(db),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// doJSON invokes the handler directly with an optional JSON body and an
// optional {id} path value.
func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body any, id int64) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if id != 0 {
		req.SetPathValue("id", strconv.FormatInt(id, 10))
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return m
}
