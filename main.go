package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/config"
	"taskboard/middleware"
	"taskboard/routes"
	"taskboard/services"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.InitLogger(); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer config.Logger.Sync()

	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	loc, err := conf.LoadLocation()
	if err != nil {
		log.Fatalf("failed to load reference timezone: %v", err)
	}

	if err := config.InitDB(conf); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if conf.RedisHost != "" {
		if err := config.InitRedis(conf); err != nil {
			log.Fatalf("failed to initialize redis: %v", err)
		}
	}

	taskService := services.NewTaskService(config.DB, loc)
	reconciler := services.NewReconciler(taskService, conf.ReconcileInterval(), config.Logger)

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r)
	routes.RegisterRoutes(r, taskService, reconciler, loc)

	// Background status sweep; stopped before the server exits.
	reconCtx, stopReconciler := context.WithCancel(context.Background())
	go reconciler.Run(reconCtx)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("starting server on port %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for an interrupt, then shut down gracefully.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	stopReconciler()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
