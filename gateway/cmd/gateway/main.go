package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kmazurek/capstone-shop/gateway/internal/config"
	"github.com/kmazurek/capstone-shop/gateway/internal/httpserver"
	"github.com/kmazurek/capstone-shop/pkg/logging"
	"github.com/kmazurek/capstone-shop/pkg/metrics"
	loggingmw "github.com/kmazurek/capstone-shop/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load("gateway/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", "gateway")
	slog.SetDefault(logger)

	m := metrics.NewServerMetrics("gateway")

	e := echo.New()
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(echomw.CORS())

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	if err := httpserver.Register(e, &httpserver.Deps{
		UsersURL:    cfg.UsersURL,
		ProductsURL: cfg.ProductsURL,
		OrdersURL:   cfg.OrdersURL,
	}); err != nil {
		log.Fatal(err)
	}

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
