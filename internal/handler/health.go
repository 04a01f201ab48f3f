package handler

import (
	"context"
	"net/http"
	"time"

	"tecstock/internal/infra"

	"github.com/gin-gonic/gin"
)

// Health reports process liveness and datastore connectivity. The app keeps
// serving (view-only) when the database is down, so a degraded datastore
// still answers 200 with database:"disconnected".
func Health(ds *infra.Datastore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		if !ds.Available() || ds.Ping(ctx) != nil {
			dbStatus = "disconnected"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": dbStatus,
		})
	}
}
