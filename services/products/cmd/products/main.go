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
	"github.com/kmazurek/capstone-shop/pkg/events"
	"github.com/kmazurek/capstone-shop/pkg/logging"
	"github.com/kmazurek/capstone-shop/pkg/metrics"
	loggingmw "github.com/kmazurek/capstone-shop/pkg/middleware/logging"

	productscfg "github.com/kmazurek/capstone-shop/services/products/internal/config"
	"github.com/kmazurek/capstone-shop/services/products/internal/httpserver"
	"github.com/kmazurek/capstone-shop/services/products/internal/models"
	"github.com/kmazurek/capstone-shop/services/products/internal/repo"
	"github.com/kmazurek/capstone-shop/services/products/internal/search"
	"github.com/kmazurek/capstone-shop/services/products/internal/service"
)

func main() {
	if err := godotenv.Load("services/products/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := productscfg.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", "products")
	slog.SetDefault(logger)

	var searchClient *search.Client
	if cfg.ESURL != "" {
		searchClient, err = search.New(cfg.ESURL, cfg.ESUser, cfg.ESPassword, "products")
		if err != nil {
			log.Fatalf("search client: %v", err)
		}
	}

	producer := events.NewProducer(cfg.KafkaBrokers, "product_events")
	defer producer.Close()

	rp := &repo.GormRepo{DB: db}
	svc := &service.ProductService{Repo: rp, Search: searchClient}
	handler := &httpserver.ProductHTTP{Svc: svc, Events: producer}

	m := metrics.NewServerMetrics("products")

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(echomw.CORS())

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	httpserver.Register(e, &httpserver.Deps{ProductHandler: handler})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("products listening on %s", srv.Addr)
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

	log.Println("products stopped")
}
