package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/otgil/otgil/internal/actions"
	"github.com/otgil/otgil/internal/app"
	"github.com/otgil/otgil/internal/config"
	"github.com/otgil/otgil/internal/web"
)

// errUsage means the flag package already told the user what went wrong.
var errUsage = errors.New("usage")

const commonFlags = `  -b, -api <url>          backend base URL (env OTGIL_API_BASE_URL, default: http://localhost:8000)
  -d, -db <path>          SQLite database path (env OTGIL_DB, default: otgil.sqlite3)
  -t, -timeout <dur>      per-request timeout, 0 for none (env OTGIL_HTTP_TIMEOUT)
  -l, -log <path>         log file path (env OTGIL_LOG, default: stdout/stderr only)
      -debug              log debug messages
  -h, -help               show this help and exit
`

// parse loads the configuration for a subcommand. extra registers the
// subcommand's own flags.
func parse(name, synopsis string, args []string, extra func(*flag.FlagSet)) (config.Config, func(), error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if extra != nil {
		extra(fs)
	}
	fs.Usage = func() {
		fmt.Fprintf(os.Stdout, "Usage: otgil %s [flags]\n\nFlags:\n%s%s", name, synopsis, commonFlags)
	}

	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		return cfg, nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return cfg, nil, errUsage
	}

	closeLog, err := setupLogger(cfg.LogPath, cfg.Debug)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, closeLog, nil
}

// open builds the application and resumes the stored session.
func open(ctx context.Context, cfg config.Config) (*app.App, error) {
	a, err := app.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening client: %w", err)
	}
	if err := a.Start(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func cmdServe(args []string) error {
	cfg, closeLog, err := parse("serve",
		"  -a, -addr <host:port>   listen address (env OTGIL_ADDR, default: 127.0.0.1:8080)\n",
		args, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	router, err := web.NewRouter(a)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.LoggingMiddleware(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "api", cfg.APIBaseURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}

func cmdLogin(args []string) error {
	var email, password string
	cfg, closeLog, err := parse("login",
		"  -e, -email <address>    account email\n  -p, -password <pass>    password (env OTGIL_PASSWORD, else read from stdin)\n",
		args, func(fs *flag.FlagSet) {
			fs.StringVar(&email, "email", "", "")
			fs.StringVar(&email, "e", "", "")
			fs.StringVar(&password, "password", os.Getenv("OTGIL_PASSWORD"), "")
			fs.StringVar(&password, "p", os.Getenv("OTGIL_PASSWORD"), "")
		})
	if err != nil {
		return err
	}
	defer closeLog()

	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	ctx := context.Background()
	a, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Actions.Login(ctx, email, password); err != nil {
		return errors.New(actions.Message(err))
	}
	u, _ := a.Session.User()
	fmt.Printf("Logged in as %s (%s).\n", u.Nickname, u.Email)
	return nil
}

func cmdLogout(args []string) error {
	cfg, closeLog, err := parse("logout", "", args, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	a, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, ok := a.Session.User(); !ok {
		fmt.Println("Not logged in.")
		return nil
	}
	if err := a.Actions.Logout(ctx); err != nil {
		return errors.New(actions.Message(err))
	}
	fmt.Println("Logged out.")
	return nil
}

func cmdStatus(args []string) error {
	cfg, closeLog, err := parse("status", "", args, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	a, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("Backend:  %s\n", a.Client.BaseURL())
	u, ok := a.Session.User()
	if !ok {
		fmt.Println("Session:  anonymous")
		return nil
	}

	fmt.Printf("Session:  %s\n", a.Session.State())
	fmt.Printf("User:     %s <%s>", u.Nickname, u.Email)
	if u.IsAdmin {
		fmt.Print(" (admin)")
	}
	fmt.Println()
	if claims, err := a.Session.Claims(); err == nil && claims.ExpiresAt != nil {
		fmt.Printf("Expires:  %s", claims.ExpiresAt.Local().Format(time.DateTime))
		if claims.Expired(time.Now()) {
			fmt.Print(" (expired)")
		}
		fmt.Println()
	}

	impact := a.Store.ImpactStats(u.ID)
	fmt.Printf("Balance:  %d OL\n", a.Store.CreditBalance(u.ID))
	fmt.Printf("Items:    %d (%.0f L water, %.1f kg CO2 saved)\n", impact.ItemsExchanged, impact.WaterSaved, impact.CO2Reduced)
	fmt.Printf("Parties:  %d upcoming\n", len(a.Store.AcceptedUpcomingParties(u.ID)))
	return nil
}
