package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envelope-app/feed-backend/config"
	"github.com/envelope-app/feed-backend/db"
	"github.com/envelope-app/feed-backend/log"
	"github.com/envelope-app/feed-backend/router"
)

func main() {
	cfg := config.Load()
	log.Configure(os.Stdout, os.Stderr, cfg.Verbose)

	log.Info.Printf("Starting Feed Backend...\n")

	if err := cfg.Validate(); err != nil {
		log.Error.Fatalln(err)
	}

	store, err := db.Init(cfg)
	if err != nil {
		log.Error.Fatalf("%v: %s", err, err)
	}
	defer store.Close()

	r := router.Init(&router.Env{Store: store})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.Wrap(r, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info.Printf("Listening on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error.Fatalf("%v: %s", err, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info.Printf("Shutting down...\n")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error.Printf("%v: %s", err, err)
	}
}
