package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MesaLibreServices/mesa-scheduler/internal/cache"
	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httpresp"
	"github.com/MesaLibreServices/mesa-scheduler/internal/middleware"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

type TableHandler struct {
	db    *gorm.DB
	cache *cache.Availability
}

func NewTableHandler(db *gorm.DB, availCache *cache.Availability) *TableHandler {
	return &TableHandler{db: db, cache: availCache}
}

type CreateTableRequest struct {
	Numero   int `json:"numero" binding:"required,gt=0"`
	Capacity int `json:"capacity" binding:"required,gt=0"`
}

// ======================================================
// LIST (PER RESTAURANT)
// ======================================================

func (h *TableHandler) List(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid restaurant id.")
		return
	}

	var tables []models.Table
	if err := h.db.
		Where("restaurant_id = ?", restaurantID).
		Order("numero ASC").
		Find(&tables).Error; err != nil {
		httperr.Internal(c, "failed_to_list_tables", "Failed to list tables.")
		return
	}

	httpresp.List(c, tables)
}

// ======================================================
// CREATE
// ======================================================

func (h *TableHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	restaurantID, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid restaurant id.")
		return
	}

	var restaurant models.Restaurant
	if err := h.db.First(&restaurant, restaurantID).Error; err != nil {
		httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
		return
	}

	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Numero and capacity must be positive.")
		return
	}

	var count int64
	h.db.Model(&models.Table{}).
		Where("restaurant_id = ? AND numero = ?", restaurantID, req.Numero).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "numero_taken", "A table with this numero already exists.")
		return
	}

	table := models.Table{
		RestaurantID: restaurantID,
		Numero:       req.Numero,
		Capacity:     req.Capacity,
	}

	if err := h.db.Create(&table).Error; err != nil {
		// the composite unique index catches the race the count above misses
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "numero_taken", "A table with this numero already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_table", "Failed to create table.")
		return
	}

	writeAudit(h.db, &restaurantID, &adminID, "table_created", "table", &table.ID, gin.H{"numero": table.Numero})
	h.cache.Invalidate(c.Request.Context(), restaurantID)

	httpresp.Created(c, table)
}

// ======================================================
// DELETE
// ======================================================

func (h *TableHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid table id.")
		return
	}

	var table models.Table
	if err := h.db.First(&table, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "table_not_found", "Table not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_table", "Failed to load table.")
		return
	}

	var pending int64
	h.db.Model(&models.Reservation{}).
		Where("table_id = ? AND estado = ?", id, string(domain.StatusPending)).
		Count(&pending)
	if pending > 0 {
		httperr.BadRequest(c, "table_has_pending_reservations", "The table still has pending reservations.")
		return
	}

	if err := h.db.Delete(&table).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_table", "Failed to delete table.")
		return
	}

	writeAudit(h.db, &table.RestaurantID, &adminID, "table_deleted", "table", &id, gin.H{"numero": table.Numero})
	h.cache.Invalidate(c.Request.Context(), table.RestaurantID)

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
