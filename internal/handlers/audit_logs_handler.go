package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httpresp"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the newest audit entries, optionally filtered by action or
// restaurant.
func (h *AuditLogsHandler) List(c *gin.Context) {
	q := h.db.Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if ridStr := c.Query("restaurant_id"); ridStr != "" {
		rid, err := strconv.ParseUint(ridStr, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_restaurant_id", "Invalid restaurant id.")
			return
		}
		q = q.Where("restaurant_id = ?", uint(rid))
	}

	limit := 100
	if limStr := c.Query("limit"); limStr != "" {
		if n, err := strconv.Atoi(limStr); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Failed to list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
