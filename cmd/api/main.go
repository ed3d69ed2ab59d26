package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"finance-stress/internal/api/handlers"
	"finance-stress/internal/api/middleware"
	"finance-stress/internal/col"
	"finance-stress/internal/config"
	"finance-stress/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Environment overrides the config file for the port, for container
	// deployments.
	if raw := os.Getenv("API_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid API_PORT %q: %v", raw, err)
		}
		cfg.Server.Port = port
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()
	log.Printf("Database ready at %s", cfg.Database.Path)

	colClient := col.NewClient(cfg.COL.BaseURL, cfg.COL.FallbackPath,
		time.Duration(cfg.COL.TimeoutSeconds)*time.Second)

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	snapshotHandler := handlers.NewSnapshotHandler(st, colClient)
	simulateHandler := handlers.NewSimulateHandler(st, cfg.Simulation.HorizonMonths)
	scenarioHandler := handlers.NewScenarioHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/snapshots", snapshotHandler.Create)
		api.GET("/snapshots", snapshotHandler.List)
		api.GET("/snapshots/:id", snapshotHandler.Get)
		api.GET("/snapshots/:id/results", simulateHandler.Results)

		api.POST("/simulate", simulateHandler.Run)

		api.GET("/scenarios", scenarioHandler.List)
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
