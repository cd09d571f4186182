package reservation

import (
	"context"
	"time"

	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

// Repository is everything the allocator needs from storage. InTx hands the
// callback a repository bound to one transaction; the scan-and-insert of an
// allocation must happen through that handle so the check and the write
// commit or roll back together.
type Repository interface {
	// -------- Restaurant / tables --------
	GetRestaurantByID(
		ctx context.Context,
		id uint,
	) (*models.Restaurant, error)

	GetTable(
		ctx context.Context,
		restaurantID uint,
		tableID uint,
	) (*models.Table, error)

	// ListTables returns all tables of a restaurant in ascending numero
	// order.
	ListTables(
		ctx context.Context,
		restaurantID uint,
	) ([]models.Table, error)

	// ListTablesByMinCapacity returns the tables seating at least the given
	// party size, in ascending numero order.
	ListTablesByMinCapacity(
		ctx context.Context,
		restaurantID uint,
		partySize int,
	) ([]models.Table, error)

	// LockTable takes an exclusive row lock on the table. Only meaningful
	// inside InTx: it serializes concurrent allocations on the same table
	// for the rest of the transaction.
	LockTable(
		ctx context.Context,
		tableID uint,
	) error

	// -------- Reservations --------
	ListActiveForTable(
		ctx context.Context,
		tableID uint,
		from time.Time,
		to time.Time,
	) ([]models.Reservation, error)

	ListActiveForRestaurant(
		ctx context.Context,
		restaurantID uint,
		from time.Time,
		to time.Time,
	) ([]models.Reservation, error)

	CreateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	GetReservationByID(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	// -------- Unit of work --------
	InTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
