package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/debate-arena/backend/internal/config"
	"github.com/zhouzirui/debate-arena/backend/internal/handler"
	"github.com/zhouzirui/debate-arena/backend/internal/model/persona"
	"github.com/zhouzirui/debate-arena/backend/internal/service/ai"
	"github.com/zhouzirui/debate-arena/backend/internal/service/debate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())

	generator, err := ai.NewService(ctx, personaStore, ai.Options{
		HistoryLimit: cfg.Debate.HistoryLimit,
		PromptsDir:   cfg.Debate.PromptsDir,
	})
	if err != nil {
		log.Fatalf("failed to initialize response generator: %v", err)
	}
	if cfg.AI.Configured() {
		log.Printf("generation provider key present (model=%s) but hosted generation is not enabled; using scripted replies", cfg.AI.Model)
	}

	debateService := debate.NewService(debate.NewMemoryStore(), generator, debate.Options{
		StrictSessions: cfg.Debate.StrictSessions,
	})
	if cfg.Debate.StrictSessions {
		log.Println("strict session lookup enabled: unknown session ids return 404")
	}

	router := handler.NewRouter(cfg.App, personaStore, debateService)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Debate Arena backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
