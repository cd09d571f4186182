package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MesaLibreServices/mesa-scheduler/internal/cache"
	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httpresp"
	"github.com/MesaLibreServices/mesa-scheduler/internal/middleware"
	ucReservation "github.com/MesaLibreServices/mesa-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	createUC *ucReservation.CreateReservation
	cancelUC *ucReservation.CancelReservation
	cache    *cache.Availability
}

func NewReservationHandler(
	createUC *ucReservation.CreateReservation,
	cancelUC *ucReservation.CancelReservation,
	availCache *cache.Availability,
) *ReservationHandler {
	return &ReservationHandler{
		createUC: createUC,
		cancelUC: cancelUC,
		cache:    availCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	TableID      *uint  `json:"table_id"`
	Start        string `json:"start" binding:"required"`
	PartySize    int    `json:"party_size" binding:"required,gt=0"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := parseStartTime(req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "Unparseable start time.")
		return
	}

	if start.Before(time.Now()) {
		httperr.BadRequest(c, "start_in_the_past", "Reservations cannot be made in the past.")
		return
	}

	builder := domain.NewBuilder().
		User(userID).
		Restaurant(req.RestaurantID).
		StartTime(start).
		PartySize(req.PartySize)

	if req.TableID != nil {
		builder.Table(*req.TableID)
	}

	cand, err := builder.Build()
	if err != nil {
		httperr.BadRequest(c, "missing_required_field", "Incomplete reservation request.")
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), cand)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "restaurant_not_found"):
			httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
		case httperr.IsBusiness(err, "table_not_found"):
			httperr.NotFound(c, "table_not_found", "Table not found in this restaurant.")
		case httperr.IsBusiness(err, "table_unavailable") || httperr.IsExclusionConflict(err):
			httperr.Conflict(c, "table_unavailable", "The selected table is not available at that time.")
		case httperr.IsBusiness(err, "no_table_available"):
			httperr.Conflict(c, "no_table_available", "No table is free for that time and party size.")
		default:
			httperr.Internal(c, "failed_to_create_reservation", "Failed to create reservation.")
		}
		return
	}

	h.cache.Invalidate(c.Request.Context(), res.RestaurantID)

	httpresp.Created(c, gin.H{
		"id":         res.ID,
		"table_id":   res.TableID,
		"start":      res.StartTime,
		"end":        domain.End(res.StartTime),
		"party_size": res.PartySize,
		"status":     res.Status,
	})
}

// ======================================================
// CANCEL (OWNER)
// ======================================================

func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}

	res, err := h.cancelUC.Execute(c.Request.Context(), id, userID, false)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "reservation_not_found"):
			httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
		case httperr.IsBusiness(err, "not_owner"):
			httperr.Forbidden(c, "not_owner", "This reservation belongs to someone else.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Only pending reservations can be cancelled.")
		default:
			httperr.Internal(c, "failed_to_cancel_reservation", "Failed to cancel reservation.")
		}
		return
	}

	h.cache.Invalidate(c.Request.Context(), res.RestaurantID)

	httpresp.OK(c, res)
}
