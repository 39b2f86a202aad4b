package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	memoryadapter "github.com/ericfisherdev/licensepanel/internal/adapter/driven/memory"
	"github.com/ericfisherdev/licensepanel/internal/adapter/driven/resendmail"
	sqliteadapter "github.com/ericfisherdev/licensepanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/licensepanel/internal/adapter/driving/http"
	"github.com/ericfisherdev/licensepanel/internal/application"
	"github.com/ericfisherdev/licensepanel/internal/config"
	"github.com/ericfisherdev/licensepanel/internal/domain/model"
	"github.com/ericfisherdev/licensepanel/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on malformed env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"notifications_configured", cfg.HasNotificationConfig(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	licenseStore := sqliteadapter.NewLicenseRepo(db)
	userStore := sqliteadapter.NewUserRepo(db)
	sessionStore := memoryadapter.NewSessionRepo()
	mailer := resendmail.New(cfg.ResendAPIKey)

	// 6. Create application services.
	licenseSvc := application.NewLicenseService(licenseStore)
	authSvc := application.NewAuthService(userStore, sessionStore)
	requestSvc := application.NewRequestService(mailer, cfg.ManagerEmail, cfg.SenderEmail)

	// 7. Seed default credentials into an empty store.
	if cfg.SeedUsers {
		if err := seedDefaultUsers(ctx, authSvc, userStore); err != nil {
			return err
		}
	}

	// 8. Create HTTP handler and register routes.
	handler := httphandler.NewHandler(licenseSvc, authSvc, requestSvc, userStore, slog.Default())
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.NewServeMux(handler, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("licensepanel started", "listen_addr", cfg.ListenAddr)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout for HTTP server drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// seedDefaultUsers registers the stock demo credentials when the user table
// is empty, mirroring first-run initialization. Existing installs are left
// untouched.
func seedDefaultUsers(ctx context.Context, authSvc *application.AuthService, userStore driven.UserStore) error {
	n, err := userStore.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seeds := []struct {
		email    string
		password string
		role     model.Role
	}{
		{"legal@corp.com", "password", model.RoleLegalOfficer},
		{"dev@corp.com", "password", model.RoleDeveloper},
		{"manager@corp.com", "password", model.RoleManager},
	}

	for _, s := range seeds {
		if _, err := authSvc.Register(ctx, s.email, s.password, s.role); err != nil {
			return err
		}
	}

	slog.Info("seeded default users", "count", len(seeds))
	return nil
}
