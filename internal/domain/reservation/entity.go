package reservation

import "github.com/MesaLibreServices/mesa-scheduler/internal/models"

// ===============================
// Domain Actions
// ===============================

func Accept(res *models.Reservation) error {
	if err := CanAccept(Status(res.Status)); err != nil {
		return err
	}

	res.Status = string(StatusAccepted)
	return nil
}

func Cancel(res *models.Reservation) error {
	if err := CanCancel(Status(res.Status)); err != nil {
		return err
	}

	res.Status = string(StatusCancelled)
	return nil
}

// IsActive reports whether a reservation still occupies its table. Only
// cancelled reservations stop counting for conflict checks.
func IsActive(res *models.Reservation) bool {
	return Status(res.Status) != StatusCancelled
}
