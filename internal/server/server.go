package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/state"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/storage"
)

// maxDocumentBytes bounds a POSTed history document. The real document is
// a few KB; anything near this size is garbage.
const maxDocumentBytes = 4 << 20

// errorResponse is the canonical error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Handler serves the state endpoint over the SQLite-backed document repo.
type Handler struct {
	repo *storage.StateRepo
	log  *slog.Logger
	now  func() time.Time
}

func NewHandler(repo *storage.StateRepo, log *slog.Logger) *Handler {
	return &Handler{repo: repo, log: log, now: time.Now}
}

// NewRouter returns the chi router with default middleware, a health
// endpoint, and the state document routes.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "starkhub-state"})
	})
	r.Get(state.StatePath, h.getState)
	r.Post(state.StatePath, h.postState)

	return r
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	doc, err := h.repo.Get(r.Context())
	if err != nil {
		h.log.Error("state read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "read_failed", "could not read state document")
		return
	}
	if doc == nil {
		// First use: hand out the initial empty document.
		raw, err := state.NewHistoryStore().Encode()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "read_failed", "could not encode initial state")
			return
		}
		writeRaw(w, http.StatusOK, raw)
		return
	}
	writeRaw(w, http.StatusOK, doc.Document)
}

func (h *Handler) postState(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "write_failed", "could not read request body")
		return
	}
	if !json.Valid(raw) {
		writeError(w, http.StatusBadRequest, "write_failed", "body is not valid JSON")
		return
	}

	revision := uuid.NewString()
	if err := h.repo.Replace(r.Context(), raw, revision, h.now().UTC()); err != nil {
		h.log.Error("state write failed", "error", err)
		writeError(w, http.StatusInternalServerError, "write_failed", "could not store state document")
		return
	}

	h.log.Info("state document replaced",
		"revision", revision,
		"bytes", len(raw),
		"requestId", middleware.GetReqID(r.Context()),
	)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "revision": revision})
}

// Run starts the HTTP server and shuts it down gracefully on interrupt or
// context cancellation.
func Run(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("state server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
	case sig := <-sigCh:
		log.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRaw(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
