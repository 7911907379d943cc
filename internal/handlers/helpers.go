package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beautyflow/beautyflow-api/internal/middleware"
)

func establishmentID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.ContextEstablishmentID).(uuid.UUID)
}

func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.ContextUserID).(uuid.UUID)
}

// queryParam aceita as duas grafias usadas pelos clients da API
// (start_date e startDate).
func queryParam(c *gin.Context, snake, camel string) string {
	if v := c.Query(snake); v != "" {
		return v
	}
	return c.Query(camel)
}

// parseTimeParam aceita RFC3339 ou data pura (2006-01-02).
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
