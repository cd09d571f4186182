package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MesaLibreServices/mesa-scheduler/internal/cache"
	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/dto"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httpresp"
	"github.com/MesaLibreServices/mesa-scheduler/internal/middleware"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
	ucReservation "github.com/MesaLibreServices/mesa-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type AdminReservationHandler struct {
	db       *gorm.DB
	acceptUC *ucReservation.AcceptReservation
	cancelUC *ucReservation.CancelReservation
	cache    *cache.Availability
}

func NewAdminReservationHandler(
	db *gorm.DB,
	acceptUC *ucReservation.AcceptReservation,
	cancelUC *ucReservation.CancelReservation,
	availCache *cache.Availability,
) *AdminReservationHandler {
	return &AdminReservationHandler{
		db:       db,
		acceptUC: acceptUC,
		cancelUC: cancelUC,
		cache:    availCache,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AdminReservationHandler) List(c *gin.Context) {
	var reservations []models.Reservation
	if err := h.db.
		Preload("User").
		Preload("Restaurant").
		Preload("Table").
		Order("fecha_hora DESC").
		Find(&reservations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Failed to list reservations.")
		return
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, res := range reservations {
		item := dto.ReservationListDTO{
			ID:         res.ID,
			StartTime:  res.StartTime,
			EndTime:    domain.End(res.StartTime),
			PartySize:  res.PartySize,
			Status:     res.Status,
			Restaurant: res.Restaurant.Name,
			UserEmail:  res.User.Email,
		}
		if res.Table != nil {
			numero := res.Table.Numero
			item.TableNumero = &numero
		}
		out = append(out, item)
	}

	httpresp.List(c, out)
}

// ======================================================
// UPDATE STATUS
// ======================================================

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus drives the reservation state machine: PENDING can be
// accepted or cancelled, ACCEPTED can only be cancelled, CANCELLED is
// terminal. There is no way back to PENDING.
func (h *AdminReservationHandler) UpdateStatus(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}

	var req UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	var res *models.Reservation
	switch domain.Status(req.Status) {
	case domain.StatusAccepted:
		res, err = h.acceptUC.Execute(c.Request.Context(), id, adminID)
	case domain.StatusCancelled:
		res, err = h.cancelUC.Execute(c.Request.Context(), id, adminID, true)
	case domain.StatusPending:
		httperr.BadRequest(c, "invalid_state", "Reservations cannot be moved back to pending.")
		return
	default:
		httperr.BadRequest(c, "invalid_status", "Unknown reservation status.")
		return
	}

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "reservation_not_found"):
			httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "This transition is not allowed.")
		default:
			httperr.Internal(c, "failed_to_update_reservation", "Failed to update reservation.")
		}
		return
	}

	h.cache.Invalidate(c.Request.Context(), res.RestaurantID)

	c.JSON(http.StatusOK, res)
}

// ======================================================
// DELETE (HARD)
// ======================================================

func (h *AdminReservationHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}

	var res models.Reservation
	if err := h.db.First(&res, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_reservation", "Failed to load reservation.")
		return
	}

	if err := h.db.Delete(&res).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_reservation", "Failed to delete reservation.")
		return
	}

	writeAudit(h.db, &res.RestaurantID, &adminID, "reservation_deleted", "reservation", &id, nil)
	h.cache.Invalidate(c.Request.Context(), res.RestaurantID)

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
