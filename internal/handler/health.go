package handler

import (
	"context"
	"net/http"
	"time"

	"abbafoods/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// A nil db means placeholder mode; a nil rdb means Redis is disabled. Neither
// makes the service unhealthy.
//
// @Summary  Estado del servicio
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Failure  503 {object} map[string]interface{}
// @Router   /health [get]
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "demo"
		if db != nil {
			dbStatus = "connected"
			sqlDB, err := db.DB()
			if err != nil || sqlDB.PingContext(ctx) != nil {
				dbStatus = "error"
			}
		}

		redisStatus := "disabled"
		var dlq int64
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			} else if n, err := worker.DLQPendientes(ctx, rdb); err == nil {
				dlq = n
			}
		}

		status := http.StatusOK
		if dbStatus == "error" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":        status == http.StatusOK,
			"modo_demo": db == nil,
			"db":        dbStatus,
			"redis":     redisStatus,
			"dlq":       dlq,
		})
	}
}
