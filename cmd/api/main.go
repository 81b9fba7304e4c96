package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"gudam.org/internal/access"
	"gudam.org/internal/cache"
	"gudam.org/internal/httpapi"
	"gudam.org/internal/obs"
	"gudam.org/internal/store/pg"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	// Local development keeps secrets in .env; absence is fine.
	_ = godotenv.Load()

	obs.Init()
	obs.InitBuildInfo(version, commit)

	dsn := os.Getenv("GUDAM_PG_DSN")
	if dsn == "" {
		log.Fatal("missing GUDAM_PG_DSN")
	}
	store, err := pg.Open(dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	// Redis is an optional read-through cache for effective permissions.
	// Without it every check hits Postgres, which is correct, just slower.
	resolverOpts := []access.ResolverOption{}
	if addr := os.Getenv("GUDAM_REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		perms := cache.NewPermissions(cache.New(client, "gudam:", 5*time.Minute))
		resolverOpts = append(resolverOpts, access.WithCache(perms))
		defer client.Close()
	}

	resolver, err := access.NewResolver(store, resolverOpts...)
	if err != nil {
		log.Fatalf("build resolver: %v", err)
	}

	api := httpapi.New(httpapi.ReadyProbe{DB: store.DB()}, version, resolver, store)

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting gudam-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
