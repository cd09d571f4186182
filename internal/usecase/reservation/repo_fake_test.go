package reservation_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory stand-in for the GORM repository. InTx holds a
// mutex for the whole callback and rolls the reservation set back on error,
// which gives tests the same serialization and all-or-nothing semantics the
// real repository gets from the database transaction and row lock.
type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	restaurants  map[uint]models.Restaurant
	tables       []models.Table
	reservations []models.Reservation
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{restaurants: make(map[uint]models.Restaurant)}
}

func (f *fakeRepo) addRestaurant(id uint, name string) {
	f.restaurants[id] = models.Restaurant{ID: id, Name: name}
}

func (f *fakeRepo) addTable(id, restaurantID uint, numero, capacity int) {
	f.tables = append(f.tables, models.Table{
		ID:           id,
		RestaurantID: restaurantID,
		Numero:       numero,
		Capacity:     capacity,
	})
}

func (f *fakeRepo) addReservation(res models.Reservation) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	res.ID = f.nextID
	f.reservations = append(f.reservations, res)
	return res.ID
}

// -------- domain.Repository --------

func (f *fakeRepo) GetRestaurantByID(_ context.Context, id uint) (*models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.restaurants[id]; ok {
		return &r, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetTable(_ context.Context, restaurantID, tableID uint) (*models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tables {
		if t.ID == tableID && t.RestaurantID == restaurantID {
			table := t
			return &table, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) ListTables(_ context.Context, restaurantID uint) ([]models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Table
	for _, t := range f.tables {
		if t.RestaurantID == restaurantID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (f *fakeRepo) ListTablesByMinCapacity(_ context.Context, restaurantID uint, partySize int) ([]models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Table
	for _, t := range f.tables {
		if t.RestaurantID == restaurantID && t.Capacity >= partySize {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (f *fakeRepo) LockTable(_ context.Context, _ uint) error {
	// InTx already serializes whole transactions
	return nil
}

func (f *fakeRepo) ListActiveForTable(_ context.Context, tableID uint, from, to time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.TableID == nil || *r.TableID != tableID {
			continue
		}
		if !domain.IsActive(&r) {
			continue
		}
		if r.StartTime.Before(from) || r.StartTime.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) ListActiveForRestaurant(_ context.Context, restaurantID uint, from, to time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.RestaurantID != restaurantID {
			continue
		}
		if !domain.IsActive(&r) {
			continue
		}
		if r.StartTime.Before(from) || r.StartTime.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) CreateReservation(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	res.ID = f.nextID
	f.reservations = append(f.reservations, *res)
	return nil
}

func (f *fakeRepo) GetReservationByID(_ context.Context, id uint) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == id {
			res := r
			return &res, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) UpdateReservation(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		if f.reservations[i].ID == res.ID {
			f.reservations[i] = *res
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRepo) InTx(_ context.Context, fn func(tx domain.Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	snapshot := append([]models.Reservation(nil), f.reservations...)
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.reservations = snapshot
		f.mu.Unlock()
		return err
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
