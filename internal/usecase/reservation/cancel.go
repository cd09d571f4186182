package reservation

import (
	"context"

	"github.com/MesaLibreServices/mesa-scheduler/internal/audit"
	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels a reservation on behalf of actorID. Owners may only
// cancel their own pending reservations; admins may also cancel accepted
// ones. Cancelled stays terminal either way.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	reservationID uint,
	actorID uint,
	asAdmin bool,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	if !asAdmin {
		if res.UserID != actorID {
			return nil, httperr.ErrBusiness("not_owner")
		}
		if domain.Status(res.Status) != domain.StatusPending {
			return nil, httperr.ErrBusiness("invalid_state")
		}
	}

	if err := domain.Cancel(res); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: &res.RestaurantID,
		UserID:       &actorID,
		Action:       "reservation_cancelled",
		Entity:       "reservation",
		EntityID:     &res.ID,
	})

	return res, nil
}
