package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MesaLibreServices/mesa-scheduler/internal/cache"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httpresp"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
	ucReservation "github.com/MesaLibreServices/mesa-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db      *gorm.DB
	availUC *ucReservation.ListAvailableTables
	cache   *cache.Availability
}

func NewPublicHandler(
	db *gorm.DB,
	availUC *ucReservation.ListAvailableTables,
	availCache *cache.Availability,
) *PublicHandler {
	return &PublicHandler{
		db:      db,
		availUC: availUC,
		cache:   availCache,
	}
}

// ======================================================
// RESTAURANTS
// ======================================================

func (h *PublicHandler) ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := h.db.Order("id ASC").Find(&restaurants).Error; err != nil {
		httperr.Internal(c, "failed_to_list_restaurants", "Failed to list restaurants.")
		return
	}

	httpresp.List(c, restaurants)
}

func (h *PublicHandler) GetRestaurant(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid restaurant id.")
		return
	}

	var restaurant models.Restaurant
	if err := h.db.
		Preload("Tables", func(db *gorm.DB) *gorm.DB {
			return db.Order("numero ASC")
		}).
		First(&restaurant, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_restaurant", "Failed to load restaurant.")
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid restaurant id.")
		return
	}

	startStr := c.Query("start")
	if startStr == "" {
		httperr.BadRequest(c, "missing_start", "Query parameter start is required.")
		return
	}

	start, err := parseStartTime(startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "Unparseable start time.")
		return
	}

	ctx := c.Request.Context()

	if tables, ok := h.cache.Get(ctx, id, start); ok {
		httpresp.List(c, tables)
		return
	}

	tables, err := h.availUC.Execute(ctx, id, start)
	if err != nil {
		if httperr.IsBusiness(err, "restaurant_not_found") {
			httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
			return
		}
		httperr.Internal(c, "failed_to_list_availability", "Failed to compute availability.")
		return
	}

	h.cache.Set(ctx, id, start, tables)

	httpresp.List(c, tables)
}
