package reservation

import (
	"context"

	"github.com/MesaLibreServices/mesa-scheduler/internal/audit"
	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

type AcceptReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAcceptReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AcceptReservation {
	return &AcceptReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AcceptReservation) Execute(
	ctx context.Context,
	reservationID uint,
	adminID uint,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	if err := domain.Accept(res); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: &res.RestaurantID,
		UserID:       &adminID,
		Action:       "reservation_accepted",
		Entity:       "reservation",
		EntityID:     &res.ID,
	})

	return res, nil
}
