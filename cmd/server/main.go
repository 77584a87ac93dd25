package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/vocabquiz/internal/api"
	"github.com/mcoot/vocabquiz/internal/config"
	"github.com/mcoot/vocabquiz/internal/factory"
	"github.com/mcoot/vocabquiz/internal/middleware"
	"github.com/mcoot/vocabquiz/internal/web"
)

const sessionJanitorInterval = 10 * time.Minute

func main() {
	bootLogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := config.LoadDotEnv(".env"); err != nil {
		bootLogger.Error("failed to load .env", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appCfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		bootLogger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, _ := appCfg.SlogLevel()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := run(appCfg, logger); err != nil {
		os.Exit(1)
	}
}

func run(appCfg *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := factory.New(ctx, factory.ConfigFromAppConfig(appCfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	go app.RunSessionJanitor(ctx, sessionJanitorInterval)

	staticDir := appCfg.StaticDir
	if staticDir == "" {
		staticDir = findStaticDir()
	}

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		ScoringService: app.ScoringService,
		Storage:        app.Storage,
		CORSOrigins:    appCfg.CORSOrigins,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		ScoringService: app.ScoringService,
		StaticDir:      staticDir,
		SecureCookies:  appCfg.CookieSecure,
	})

	// Combine routers
	mux := http.NewServeMux()
	metricsLogger := logger.With(slog.String("surface", "metrics"))
	mux.Handle("/metrics", middleware.Recovery(metricsLogger, middleware.PlainTextPanicHandler)(promhttp.Handler()))
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = appCfg.Host
	serverConfig.Port = appCfg.Port
	server := api.NewServer(mux, serverConfig, logger)

	logger.Info("serving",
		slog.String("addr", appCfg.Addr()),
		slog.String("storage", appCfg.StorageBackend()),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return "internal/web/static"
}
