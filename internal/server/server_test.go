package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/state"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(storage.NewStateRepo(db), log)
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetStateBeforeAnySaveReturnsInitialDocument(t *testing.T) {
	srv := newTestServer(t)

	client := state.NewClient(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	store, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(store.Weeks) != 0 || len(store.Unlocked) != 0 {
		t.Fatalf("expected the initial empty document, got %+v", store)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	client := state.NewClient(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	doc := state.NewHistoryStore()
	doc.SetMark(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), "exercise", true)
	doc.Unlock([]string{"first_spark"})

	if err := client.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := client.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(doc, loaded) {
		t.Fatalf("round trip mismatch:\nsaved  %+v\nloaded %+v", doc, loaded)
	}

	// save(load()) is idempotent: a second unmodified save round-trips to
	// identical content.
	if err := client.Save(ctx, loaded); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	again, err := client.Load(ctx)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, again) {
		t.Fatalf("second round trip drifted")
	}
}

func TestSaveOverwritesWholeDocument(t *testing.T) {
	srv := newTestServer(t)
	client := state.NewClient(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	first := state.NewHistoryStore()
	first.SetMark(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), "exercise", true)
	if err := client.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := state.NewHistoryStore()
	second.SetMark(time.Date(2024, time.February, 5, 0, 0, 0, 0, time.Local), "reading", true)
	if err := client.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := client.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Record("2024-01-01") != nil {
		t.Fatalf("old document content survived a full overwrite")
	}
	if loaded.Record("2024-02-05") == nil {
		t.Fatalf("new document content missing")
	}
}

func TestPostRejectsInvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+state.StatePath, "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "write_failed") {
		t.Fatalf("missing error envelope: %s", body)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, want 200", resp.StatusCode)
	}
}
