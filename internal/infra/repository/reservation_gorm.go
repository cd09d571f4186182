package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Restaurant / tables
// --------------------------------------------------

func (r *ReservationGormRepository) GetRestaurantByID(
	ctx context.Context,
	id uint,
) (*models.Restaurant, error) {

	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *ReservationGormRepository) GetTable(
	ctx context.Context,
	restaurantID uint,
	tableID uint,
) (*models.Table, error) {

	var table models.Table
	if err := r.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", tableID, restaurantID).
		First(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *ReservationGormRepository) ListTables(
	ctx context.Context,
	restaurantID uint,
) ([]models.Table, error) {

	var tables []models.Table
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("numero ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *ReservationGormRepository) ListTablesByMinCapacity(
	ctx context.Context,
	restaurantID uint,
	partySize int,
) ([]models.Table, error) {

	var tables []models.Table
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND capacidad >= ?", restaurantID, partySize).
		Order("numero ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// LockTable takes FOR UPDATE on the table row. Locks are always requested
// in ascending numero order by the allocator, which keeps concurrent
// auto-assign transactions deadlock-free.
func (r *ReservationGormRepository) LockTable(
	ctx context.Context,
	tableID uint,
) error {

	var table models.Table
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&table, tableID).Error
}

// --------------------------------------------------
// Reservations
// --------------------------------------------------

func (r *ReservationGormRepository) ListActiveForTable(
	ctx context.Context,
	tableID uint,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where(
			"table_id = ? AND estado <> ? AND fecha_hora >= ? AND fecha_hora <= ?",
			tableID, string(domain.StatusCancelled), from, to,
		).
		Order("fecha_hora ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationGormRepository) ListActiveForRestaurant(
	ctx context.Context,
	restaurantID uint,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where(
			"restaurant_id = ? AND estado <> ? AND fecha_hora >= ? AND fecha_hora <= ?",
			restaurantID, string(domain.StatusCancelled), from, to,
		).
		Order("fecha_hora ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationGormRepository) GetReservationByID(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(res).Error
}

// --------------------------------------------------
// Unit of work
// --------------------------------------------------

func (r *ReservationGormRepository) InTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
