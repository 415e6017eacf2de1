package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/kmazurek/capstone-shop/pkg/db"
	"github.com/kmazurek/capstone-shop/pkg/logging"
	"github.com/kmazurek/capstone-shop/pkg/metrics"
	loggingmw "github.com/kmazurek/capstone-shop/pkg/middleware/logging"

	userscfg "github.com/kmazurek/capstone-shop/services/users/internal/config"
	"github.com/kmazurek/capstone-shop/services/users/internal/httpserver"
	"github.com/kmazurek/capstone-shop/services/users/internal/models"
	"github.com/kmazurek/capstone-shop/services/users/internal/repo"
	"github.com/kmazurek/capstone-shop/services/users/internal/service"
)

func main() {
	if err := godotenv.Load("services/users/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := userscfg.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", "users")
	slog.SetDefault(logger)

	rp := &repo.GormRepo{DB: db}
	svc := &service.UserService{Repo: rp}
	handler := &httpserver.UserHTTP{Svc: svc}

	m := metrics.NewServerMetrics("users")

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(echomw.CORS())

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	httpserver.Register(e, &httpserver.Deps{UserHandler: handler})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("users listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("users stopped")
}
