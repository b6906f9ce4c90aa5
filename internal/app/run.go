package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Flarenzy/ipam-engine/internal/auth"
	appdb "github.com/Flarenzy/ipam-engine/internal/db"
	"github.com/Flarenzy/ipam-engine/internal/domain"
	apihttp "github.com/Flarenzy/ipam-engine/internal/http"
)

type Config struct {
	Port         string
	DSN          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	AuthEnabled  bool
	AuthIssuer   string
	AuthJWKSURL  string
	AuthAudience string
}

func LoadConfig() Config {
	cfg := Config{
		DSN:          os.Getenv("DB_CONN"),
		Port:         os.Getenv("PORT"),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		AuthIssuer:   os.Getenv("AUTH_ISSUER"),
		AuthJWKSURL:  os.Getenv("AUTH_JWKS_URL"),
		AuthAudience: os.Getenv("AUTH_AUDIENCE"),
	}

	if enabled, err := strconv.ParseBool(os.Getenv("AUTH_ENABLED")); err == nil {
		cfg.AuthEnabled = enabled
	}

	if cfg.DSN == "" {
		log.Fatal("missing required environment variable: DB_CONN")
	}
	if cfg.Port == "" {
		cfg.Port = "4040"
	}
	return cfg
}

func newAuthenticator(ctx context.Context, cfg Config) (auth.Authenticator, error) {
	if !cfg.AuthEnabled {
		return nil, nil
	}
	return auth.NewKeycloakAuthenticator(ctx, auth.Config{
		Enabled:  true,
		Issuer:   cfg.AuthIssuer,
		JWKSURL:  cfg.AuthJWKSURL,
		Audience: cfg.AuthAudience,
	})
}

func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, cfg, listener)
}

// Serve wires the stores, engine and HTTP API over the given listener and
// blocks until ctx is cancelled.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	authenticator, err := newAuthenticator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configuring authenticator: %w", err)
	}

	pool, err := appdb.NewPool(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := appdb.Migrate(ctx, pool); err != nil {
		return err
	}

	service := domain.NewLoggingService(logger, domain.NewService(
		appdb.NewSubnetRepository(pool),
		appdb.NewRecordStore(pool),
		appdb.NewReservationStore(pool),
		appdb.NewAuditLog(pool),
	))

	api := apihttp.NewAPI(logger, pool, service, authenticator)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("serving", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve failed", "err", err.Error())
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
