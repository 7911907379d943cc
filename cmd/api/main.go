package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/beautyflow/beautyflow-api/internal/audit"
	"github.com/beautyflow/beautyflow-api/internal/config"
	dbpkg "github.com/beautyflow/beautyflow-api/internal/db"
	"github.com/beautyflow/beautyflow-api/internal/routes"
	"github.com/beautyflow/beautyflow-api/internal/scheduler"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "BeautyFlow API"})
	})

	routes.RegisterRoutes(r, db, cfg)

	if cfg.NoShowCron != "" {
		sweeper := scheduler.NewNoShowSweeper(db, audit.New(db))
		if err := sweeper.Start(cfg.NoShowCron); err != nil {
			log.Fatalf("failed to start no-show sweeper: %v", err)
		}
		defer sweeper.Stop()
	}

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
