// Command reader is the search query stub. It terminates HTTP search
// requests and will fan out to the index backend once one exists.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/searchops/searchops/internal/logging"
	"github.com/searchops/searchops/internal/stubserver"
)

var tracer trace.Tracer = otel.Tracer("reader")

type searchResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
	TookMS  int64    `json:"took_ms"`
}

func main() {
	l, err := logging.New(os.Getenv("SEARCHOPS_LOG_FORMAT"), slog.LevelInfo)
	if err != nil {
		l, _ = logging.New("", slog.LevelInfo)
	}
	ctx := logging.WithLogger(context.Background(), l)

	srv := stubserver.New(stubserver.FromEnv("reader", 8080))
	srv.Route(func(r chi.Router) {
		r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			q := req.URL.Query().Get("q")
			if q == "" {
				http.Error(w, "missing query parameter q", http.StatusBadRequest)
				return
			}
			_, span := tracer.Start(req.Context(), "search.query",
				trace.WithAttributes(attribute.String("search.query", q)))
			defer span.End()
			// No index backend yet, every query matches nothing.
			resp := searchResponse{
				Query:   q,
				Results: []string{},
				TookMS:  time.Since(start).Milliseconds(),
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		})
	})

	if err := srv.Run(ctx); err != nil {
		l.Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
