package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Azeezfasasi/lasu-mba-cloth/config"
)

// HealthController reports process and database liveness
type HealthController struct {
	db *config.Database
}

func NewHealthController(db *config.Database) *HealthController {
	return &HealthController{db: db}
}

// Health handles GET /api/health
func (h *HealthController) Health(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"message": "LASUMBA API is running"})
}

// DatabaseStatus handles GET /api/database/status - pings the database and lists its tables
func (h *HealthController) DatabaseStatus(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Database connection failed",
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	tables, err := h.db.DB.WithContext(c.Request.Context()).Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to query tables",
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"message": "Database connected",
		"tables":  tables,
	})
}
