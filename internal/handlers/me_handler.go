package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MesaLibreServices/mesa-scheduler/internal/config"
	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/dto"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/middleware"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
	"github.com/MesaLibreServices/mesa-scheduler/internal/validators"
)

type MeHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewMeHandler(db *gorm.DB, cfg *config.Config) *MeHandler {
	return &MeHandler{db: db, config: cfg}
}

// GetMe returns the authenticated user's profile and their reservations,
// newest first.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Failed to load profile.")
		return
	}

	var reservations []models.Reservation
	if err := h.db.
		Preload("Restaurant").
		Preload("Table").
		Where("user_id = ?", userID).
		Order("fecha_hora DESC").
		Find(&reservations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Failed to load reservations.")
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
		}
		if res.Table != nil {
			numero := res.Table.Numero
			item.TableNumero = &numero
		}
		out = append(out, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
		"reservations": out,
	})
}

type UpdateMeRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateMe changes the email and/or the password. A password change
// requires the current password; a new email must not be taken.
func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Failed to load profile.")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != user.Email {
			if !validators.IsEmailDomainValid(email) {
				httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
				return
			}

			var count int64
			h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
			if count > 0 {
				httperr.BadRequest(c, "email_already_registered", "This email is already in use.")
				return
			}
			user.Email = email
		}
	}

	if req.NewPassword != "" {
		if len(req.NewPassword) < 6 {
			httperr.BadRequest(c, "password_too_short", "Password must be at least 6 characters.")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
			httperr.BadRequest(c, "wrong_current_password", "Current password is incorrect.")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), h.config.BcryptCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Failed to update password.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Failed to save profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
