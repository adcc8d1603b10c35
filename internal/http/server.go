// Package http exposes the intake and allocation API. The engine does
// the computing; these handlers only translate JSON to profiles and
// results to JSON.
package http

import (
	"context"
	"net/http"
	"time"

	"nestegg/internal/engine"
	"nestegg/internal/store"
)

// RequestPublisher enqueues an allocation request for the batch
// worker. nil disables queueing and allocations run inline only.
type RequestPublisher interface {
	PublishAllocationRequest(ctx context.Context, clientID string, version int64) error
}

// NewServer wires the API routes and returns a configured server.
func NewServer(addr string, st store.Store, eng *engine.Engine, publisher RequestPublisher) *http.Server {
	h := &handlers{store: st, engine: eng, publisher: publisher}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("POST /api/clients", h.createClient)
	mux.HandleFunc("POST /api/clients/{id}/allocate", h.allocate)
	mux.HandleFunc("GET /api/clients/{id}/plan", h.plan)

	return &http.Server{
		Addr:           addr,
		Handler:        mux,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}
