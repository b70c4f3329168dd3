// Command indexer is the index maintenance stub. It will consume
// documents from the message transport and write index segments to the
// object storage bucket named by the BUCKET_* environment variables.
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

	"github.com/searchops/searchops/internal/logging"
	"github.com/searchops/searchops/internal/stubserver"
)

type statsResponse struct {
	Indexed   int64     `json:"indexed"`
	StartedAt time.Time `json:"started_at"`
}

func main() {
	l, err := logging.New(os.Getenv("SEARCHOPS_LOG_FORMAT"), slog.LevelInfo)
	if err != nil {
		l, _ = logging.New("", slog.LevelInfo)
	}
	ctx := logging.WithLogger(context.Background(), l)

	started := time.Now().UTC()
	var indexed atomic.Int64

	srv := stubserver.New(stubserver.FromEnv("indexer", 8080))
	srv.Route(func(r chi.Router) {
		r.Get("/stats", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(statsResponse{Indexed: indexed.Load(), StartedAt: started})
		})
	})

	if err := srv.Run(ctx); err != nil {
		l.Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
