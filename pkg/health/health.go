package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewHandler(db *gorm.DB) Handler {
	return Handler{db}
}

type Handler struct {
	db *gorm.DB
}

// Status describes the service health
// swagger:model
type Status struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Health endpoint
func (h Handler) Health(c *gin.Context) {
	// swagger:route GET /health health
	//
	// Health
	//
	// Service and database status
	//
	// responses:
	//   200: Status
	database := "connected"
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		database = "disconnected"
	}

	c.JSON(http.StatusOK, Status{
		Status:    "healthy",
		Database:  database,
		Timestamp: time.Now().UTC(),
	})
}
