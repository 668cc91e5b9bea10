package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"eduresources/internal/config"
	"eduresources/internal/delivery"
	ws "eduresources/internal/delivery/ws"
	"eduresources/internal/domain"
	"eduresources/internal/infra"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	defer zcore.Sync()
	zl := zcore.Sugar()

	// CONFIG
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	// POSTGRES
	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatalw("postgres init failed", "error", err)
	}
	defer pool.Close()

	// BLOB STORE
	blobs, err := infra.NewMinioBlobStore(ctx, cfg.Minio)
	if err != nil {
		zl.Fatalw("blob store init failed", "error", err)
	}

	// SERVICES
	repo := infra.NewPostgresResourceRepo(pool)
	resourceService := domain.NewResourceService(repo, blobs, zl)

	// HANDLERS
	hResources := delivery.NewResourceHandler(resourceService, zl)

	// WS HUB
	hub := ws.NewHub()

	// BROADCAST LISTENER
	go func() {
		for ev := range resourceService.Events() {
			payload, err := json.Marshal(ev)
			if err != nil {
				zl.Errorw("event marshal failed", "error", err)
				continue
			}
			hub.Broadcast(payload)
		}
	}()

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, hResources)

	r.Get("/ws", ws.EventsHandler(hub))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Infow("server started", "port", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Errorw("server crashed", "error", err)
	}
}
