package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rvasanth/distributor-console/pkg/balance"
	"github.com/rvasanth/distributor-console/pkg/config"
	"github.com/rvasanth/distributor-console/pkg/handlers"
	"github.com/rvasanth/distributor-console/pkg/ledger"
	"github.com/rvasanth/distributor-console/pkg/middleware"
	"github.com/rvasanth/distributor-console/pkg/session"
	"github.com/rvasanth/distributor-console/pkg/websockets"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Session token persists across restarts the way a browser session
	// would, so the operator is not forced to log in after every launch.
	store := session.NewFileStore(cfg.TokenPath)
	sessions := session.NewManager(store, nil)

	client := ledger.NewClient(cfg.LedgerBaseURL, cfg.RequestTimeout, sessions)
	sessions.SetAuthenticator(client)

	balances := balance.New(client)
	hub := websockets.NewHub()

	console := handlers.New(cfg.ConsoleRole, sessions, client, balances, hub)

	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(middleware.Metrics)
	router.Handle("/metrics", promhttp.Handler())
	console.Routes(router)

	slog.Info("starting console", "role", cfg.ConsoleRole, "port", cfg.Port, "ledger", cfg.LedgerBaseURL)

	err = http.ListenAndServe(":"+cfg.Port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
