package main

import (
	"context"
	"net/http/httptest"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/svcdesk/adminconsole/internal/console"
	"github.com/svcdesk/adminconsole/internal/core/service"
	"github.com/svcdesk/adminconsole/internal/gateway"
	"github.com/svcdesk/adminconsole/internal/infrastructure/config"
	"github.com/svcdesk/adminconsole/internal/infrastructure/storage"
	"github.com/svcdesk/adminconsole/internal/rest"
	"github.com/svcdesk/adminconsole/internal/session"
	"github.com/svcdesk/adminconsole/internal/stubapi"
	"github.com/svcdesk/adminconsole/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	baseURL := cfg.APIBaseURL
	if len(os.Args) > 1 && os.Args[1] == "--stub" {
		// Local mode: run the in-memory backend inside this process.
		srv := httptest.NewServer(stubapi.New(cfg.Stub.JWTSecret, cfg.Stub.TokenTTL, log))
		defer srv.Close()
		baseURL = srv.URL
		log.Info().Str("url", baseURL).Msg("running against in-process stub backend")
	}

	store, err := storage.NewFileStore(cfg.StatePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open state storage")
	}

	sessions := session.NewStore(store, log)
	gw := gateway.New(baseURL, cfg.RequestTimeout, sessions, store, log)
	auth := service.NewAuthenticator(sessions, gw, cfg.LoginTimeout, log)

	// Rehydrate before the shell mounts so the first guard evaluation sees
	// settled state rather than uninitialized.
	sessions.Rehydrate()

	nav := console.NewHistoryNavigator("/")
	gw.Bind(nav, sessions)

	clients := console.Clients{
		Customers: rest.NewCustomersClient(gw),
		Users:     rest.NewUsersClient(gw),
		Services:  rest.NewServicesClient(gw),
		Discounts: rest.NewDiscountsClient(gw),
		Orders:    rest.NewOrdersClient(gw),
		Expenses:  rest.NewExpensesClient(gw),
		Analytics: rest.NewAnalyticsClient(gw),
	}

	shell := console.NewShell(sessions, store, auth, nav, gw, clients, log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := shell.Run(ctx, os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("console exited with error")
	}
}
