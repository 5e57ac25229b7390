// Command otgil-fakeapi serves the in-memory development backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/otgil/otgil/internal/db"
	"github.com/otgil/otgil/internal/fakeapi"
	"github.com/otgil/otgil/internal/store"
)

func main() {
	fs := flag.NewFlagSet("otgil-fakeapi", flag.ContinueOnError)

	var addr string
	fs.StringVar(&addr, "addr", "127.0.0.1:8000", "")
	fs.StringVar(&addr, "a", "127.0.0.1:8000", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var empty bool
	fs.BoolVar(&empty, "empty", false, "")

	fs.Usage = func() {
		fmt.Fprintf(os.Stdout, `Usage: otgil-fakeapi [flags]

Flags:
  -a, -addr <host:port>   listen address (default: 127.0.0.1:8000)
  -d, -db <path>          SQLite file keeping the signing secret, so tokens
                          survive restarts (default: none, new secret each run)
      -empty              start without demo data
  -h, -help               show this help and exit

Demo accounts use the password %q.
`, fakeapi.SeedPassword)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	secret, err := jwtSecret(dbPath)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}

	data := fakeapi.NewData()
	if !empty {
		if err := fakeapi.Seed(data); err != nil {
			slog.Error("failed to seed data", "error", err)
			os.Exit(1)
		}
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           fakeapi.New(data, secret),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("fake backend started", "addr", addr, "seeded", !empty)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// jwtSecret loads the signing secret from the database at path, creating it
// on first use. Without a path the secret lives in memory only.
func jwtSecret(path string) (string, error) {
	if path == "" {
		path = ":memory:"
	}
	database, err := db.Open(path)
	if err != nil {
		return "", err
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return "", err
	}
	return store.GetJWTSecret(context.Background(), database)
}
