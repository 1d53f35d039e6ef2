package main

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-glints-harvester/internal/config"
	"go-glints-harvester/internal/database"
)

func main() {
	cfg := config.Load()

	var repo *database.Repository
	if cfg.DatabaseURL != "" {
		var err error
		repo, err = database.ConnectDB(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer repo.Close()

		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("❌ Failed to apply database schema: %v", err)
		}
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Glints harvester API is running!",
			"status":  "healthy",
		})
	})

	//GET /jobs?keyword=social+media+specialist&limit=50
	r.GET("/jobs", func(c *gin.Context) {
		if repo == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no database configured"})
			return
		}

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 500 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number between 1 and 500"})
				return
			}
			limit = parsed
		}

		jobs, err := repo.RecentJobs(c.Request.Context(), c.Query("keyword"), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(jobs), "jobs": jobs})
	})

	log.Printf("Server listening on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
