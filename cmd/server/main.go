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

	"github.com/filmoteka-app/filmoteka/internal/config"
	httpserver "github.com/filmoteka-app/filmoteka/internal/http"
	"github.com/filmoteka-app/filmoteka/internal/metadata"
	"github.com/filmoteka-app/filmoteka/internal/repository"
	"github.com/filmoteka-app/filmoteka/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[filmoteka] ", log.LstdFlags|log.Lshortfile)

	// With no external DB_URL the catalog runs its own file-backed database
	// under DATA_DIR.
	dbURL := cfg.DBURL
	var embedded *store.EmbeddedDB
	if dbURL == "" {
		embedded, err = store.StartEmbedded(cfg.DataDir, uint32(cfg.DBPort), logger)
		if err != nil {
			log.Fatalf("start local database: %v", err)
		}
		defer func() {
			if err := embedded.Stop(); err != nil {
				logger.Printf("stop local database: %v", err)
			}
		}()
		dbURL = embedded.DSN()
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	st, err := store.New(dbCtx, dbURL, storeOpts)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	if err := repository.InitSchema(dbCtx, st.Pool(), cfg.GenreSeed); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	var metaClient metadata.Client
	if cfg.MetadataURL != "" {
		client, err := metadata.NewHTTPClient(cfg.MetadataURL, cfg.MetadataAPIKey, time.Duration(cfg.MetadataTimeoutSecs)*time.Second, logger)
		if err != nil {
			log.Fatalf("init metadata client: %v", err)
		}
		metaClient = client
	}

	repo := repository.New(st, repository.Options{ActorSearchMinPrefix: cfg.ActorSearchMinPrefix})
	server := httpserver.New(cfg, st, repo, metaClient, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}
