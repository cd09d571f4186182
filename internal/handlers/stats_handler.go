package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

type StatsHandler struct {
	db *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// Get returns the totals shown on the admin dashboard.
func (h *StatsHandler) Get(c *gin.Context) {
	var (
		totalReservations   int64
		pendingReservations int64
		totalUsers          int64
		totalRestaurants    int64
	)

	err := h.db.Model(&models.Reservation{}).Count(&totalReservations).Error
	if err == nil {
		err = h.db.Model(&models.Reservation{}).
			Where("estado = ?", string(domain.StatusPending)).
			Count(&pendingReservations).Error
	}
	if err == nil {
		err = h.db.Model(&models.User{}).Count(&totalUsers).Error
	}
	if err == nil {
		err = h.db.Model(&models.Restaurant{}).Count(&totalRestaurants).Error
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_stats", "Failed to load statistics.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_reservations":   totalReservations,
		"pending_reservations": pendingReservations,
		"total_users":          totalUsers,
		"total_restaurants":    totalRestaurants,
	})
}
