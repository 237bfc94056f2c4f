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

	"cafe-ordering-api/catalog"
	"cafe-ordering-api/checkout"
	"cafe-ordering-api/config"
	"cafe-ordering-api/events"
	"cafe-ordering-api/handlers"
	"cafe-ordering-api/logger"
	"cafe-ordering-api/middleware"
	"cafe-ordering-api/models"
	"cafe-ordering-api/routes"
	"cafe-ordering-api/session"
	"cafe-ordering-api/tables"
	"cafe-ordering-api/tracking"
	"cafe-ordering-api/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const serviceName = "cafe-ordering-api"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(serviceName, cfg.LogLevel, os.Stdout)
	slog.SetDefault(log)
	gin.SetMode(cfg.GinMode)

	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	// Initialize database
	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	log.Info("database connected and migrated", slog.String("path", cfg.DBPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	menu := catalog.New(db)
	floor := tables.New(db)
	accounts := users.New(db)
	if err := menu.Seed(ctx); err != nil {
		return err
	}
	if err := floor.Seed(ctx, tables.Floor); err != nil {
		return err
	}
	if err := accounts.Seed(ctx, cfg.Admin.Username, cfg.Admin.Password, models.RoleAdmin); err != nil {
		return err
	}

	var publisher events.Publisher = events.LogPublisher{Log: log}
	if cfg.NATSURL != "" {
		np, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return err
		}
		publisher = np
		log.Info("publishing order events to NATS", slog.String("url", cfg.NATSURL))
	}
	defer publisher.Close()

	sessions := session.NewStore()
	orders := tracking.New(db, publisher, log)
	h := &handlers.Handler{
		Catalog:   menu,
		Tables:    floor,
		Sessions:  sessions,
		Checkout:  checkout.New(checkout.NewGormRepository(db), publisher, log, cfg.Checkout.SubmitTimeout),
		Tracking:  orders,
		Users:     accounts,
		JWTSecret: []byte(cfg.JWTSecret),
		Log:       log,
	}

	// gin router with access log, recovery, request ids and CORS
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID(), middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "☕ Welcome to the Café Ordering API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"modes":   []models.FulfillmentType{models.Takeaway, models.DineIn, models.RoomDelivery},
		})
	})
	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server running", slog.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return tracking.NewProgressor(orders, cfg.Tracking.Interval, log).Run(gctx)
	})
	g.Go(func() error {
		return sessions.RunSweeper(gctx, cfg.Session.IdleTTL, log)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
