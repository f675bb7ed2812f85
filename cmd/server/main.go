package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/divide-it/backend/internal/auth"
	"github.com/divide-it/backend/internal/middleware"
	"github.com/divide-it/backend/internal/server"
	"github.com/divide-it/backend/internal/service"
	"github.com/divide-it/backend/internal/storage/sqlite"
	"github.com/divide-it/backend/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "./data/ledger.db")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	srv := server.New(
		service.NewUserService(store, authenticator, jwtManager),
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewBalanceService(store),
		service.NewSettlementService(store),
		service.NewHistoryService(store),
		jwtManager,
	)

	mux := srv.Routes()
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// h2c keeps HTTP/2 available to clients without requiring TLS here.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
