package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httpresp"
	"github.com/MesaLibreServices/mesa-scheduler/internal/middleware"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

// Admin CRUD over restaurants. Deleting a restaurant cascades to its tables
// at the database level.

type RestaurantHandler struct {
	db *gorm.DB
}

func NewRestaurantHandler(db *gorm.DB) *RestaurantHandler {
	return &RestaurantHandler{db: db}
}

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

func (h *RestaurantHandler) List(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := h.db.Order("id ASC").Find(&restaurants).Error; err != nil {
		httperr.Internal(c, "failed_to_list_restaurants", "Failed to list restaurants.")
		return
	}

	httpresp.List(c, restaurants)
}

func (h *RestaurantHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Restaurant name is required.")
		return
	}

	restaurant := models.Restaurant{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}

	if err := h.db.Create(&restaurant).Error; err != nil {
		httperr.Internal(c, "failed_to_create_restaurant", "Failed to create restaurant.")
		return
	}

	writeAudit(h.db, &restaurant.ID, &adminID, "restaurant_created", "restaurant", &restaurant.ID, nil)

	httpresp.Created(c, restaurant)
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid restaurant id.")
		return
	}

	var restaurant models.Restaurant
	if err := h.db.First(&restaurant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_restaurant", "Failed to load restaurant.")
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			httperr.BadRequest(c, "invalid_name", "Restaurant name cannot be empty.")
			return
		}
		restaurant.Name = *req.Name
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
	}

	if err := h.db.Save(&restaurant).Error; err != nil {
		httperr.Internal(c, "failed_to_update_restaurant", "Failed to save restaurant.")
		return
	}

	writeAudit(h.db, &restaurant.ID, &adminID, "restaurant_updated", "restaurant", &restaurant.ID, nil)

	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid restaurant id.")
		return
	}

	var restaurant models.Restaurant
	if err := h.db.First(&restaurant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_restaurant", "Failed to load restaurant.")
		return
	}

	if err := h.db.Delete(&restaurant).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_restaurant", "Failed to delete restaurant.")
		return
	}

	writeAudit(h.db, nil, &adminID, "restaurant_deleted", "restaurant", &id, gin.H{"name": restaurant.Name})

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
