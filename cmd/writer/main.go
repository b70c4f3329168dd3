// Command writer is the document ingestion stub. It accepts documents
// over HTTP and will publish them to the message transport the
// environment provisions (Kafka topics or SQS queues).
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/searchops/searchops/internal/logging"
	"github.com/searchops/searchops/internal/stubserver"
)

type document struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type acceptResponse struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	AcceptedAt time.Time `json:"accepted_at"`
}

func main() {
	l, err := logging.New(os.Getenv("SEARCHOPS_LOG_FORMAT"), slog.LevelInfo)
	if err != nil {
		l, _ = logging.New("", slog.LevelInfo)
	}
	ctx := logging.WithLogger(context.Background(), l)

	var accepted atomic.Int64

	srv := stubserver.New(stubserver.FromEnv("writer", 8080))
	srv.Route(func(r chi.Router) {
		r.Post("/documents", func(w http.ResponseWriter, req *http.Request) {
			var doc document
			if err := json.NewDecoder(req.Body).Decode(&doc); err != nil {
				http.Error(w, "invalid document body", http.StatusBadRequest)
				return
			}
			if doc.ID == "" {
				doc.ID = uuid.NewString()
			}
			accepted.Add(1)
			l.Info(req.Context(), "document accepted", "id", doc.ID, "title", doc.Title)
			// Transport publish lands here once the clients are wired;
			// the broker address arrives via KAFKA_BOOTSTRAP_BROKERS or
			// QUEUE_URL_* environment variables.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(acceptResponse{ID: doc.ID, Status: "accepted", AcceptedAt: time.Now().UTC()})
		})
		r.Get("/stats", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]int64{"accepted": accepted.Load()})
		})
	})

	if err := srv.Run(ctx); err != nil {
		l.Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
