package reservation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
	ucReservation "github.com/MesaLibreServices/mesa-scheduler/internal/usecase/reservation"
)

var at19 = time.Date(2024, 6, 1, 19, 0, 0, 0, time.UTC)

// twoTableRepo: restaurant 1 with table 10 (#1, seats 2) and table 20
// (#2, seats 4).
func twoTableRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.addRestaurant(1, "La Parrilla")
	repo.addTable(10, 1, 1, 2)
	repo.addTable(20, 1, 2, 4)
	return repo
}

func candidate(t *testing.T, partySize int, start time.Time, tableID *uint) models.Reservation {
	t.Helper()

	b := domain.NewBuilder().
		User(1).
		Restaurant(1).
		StartTime(start).
		PartySize(partySize)
	if tableID != nil {
		b.Table(*tableID)
	}

	cand, err := b.Build()
	require.NoError(t, err)
	return cand
}

func TestCreateReservation_AutoAssignPrefersLowestNumero(t *testing.T) {
	repo := twoTableRepo()
	uc := ucReservation.NewCreateReservation(repo, nil)

	// party of 3 only fits table #2
	res, err := uc.Execute(context.Background(), candidate(t, 3, at19, nil))
	require.NoError(t, err)
	require.NotNil(t, res.TableID)
	assert.Equal(t, uint(20), *res.TableID)
	assert.Equal(t, string(domain.StatusPending), res.Status)

	// party of 2 fits both, #1 wins
	res2, err := uc.Execute(context.Background(), candidate(t, 2, at19, nil))
	require.NoError(t, err)
	require.NotNil(t, res2.TableID)
	assert.Equal(t, uint(10), *res2.TableID)
}

func TestCreateReservation_OverlapBlocksOnlySufficientTable(t *testing.T) {
	repo := twoTableRepo()
	uc := ucReservation.NewCreateReservation(repo, nil)

	tableID := uint(20)
	repo.addReservation(models.Reservation{
		UserID:       2,
		RestaurantID: 1,
		TableID:      &tableID,
		StartTime:    at19.Add(-time.Hour), // 18:00–20:00
		PartySize:    4,
		Status:       string(domain.StatusPending),
	})

	// 19:00–21:00 overlaps on #2; #1 cannot seat 3
	_, err := uc.Execute(context.Background(), candidate(t, 3, at19, nil))
	assert.True(t, httperr.IsBusiness(err, "no_table_available"))
}

func TestCreateReservation_CancelledReservationsDoNotBlock(t *testing.T) {
	repo := twoTableRepo()
	uc := ucReservation.NewCreateReservation(repo, nil)

	tableID := uint(20)
	repo.addReservation(models.Reservation{
		UserID:       2,
		RestaurantID: 1,
		TableID:      &tableID,
		StartTime:    at19.Add(-time.Hour),
		PartySize:    4,
		Status:       string(domain.StatusCancelled),
	})

	res, err := uc.Execute(context.Background(), candidate(t, 3, at19, nil))
	require.NoError(t, err)
	assert.Equal(t, uint(20), *res.TableID)
}

func TestCreateReservation_TouchingWindowsDoNotConflict(t *testing.T) {
	repo := twoTableRepo()
	uc := ucReservation.NewCreateReservation(repo, nil)

	tableID := uint(20)
	repo.addReservation(models.Reservation{
		UserID:       2,
		RestaurantID: 1,
		TableID:      &tableID,
		StartTime:    at19.Add(-2 * time.Hour), // 17:00–19:00
		PartySize:    4,
		Status:       string(domain.StatusPending),
	})

	res, err := uc.Execute(context.Background(), candidate(t, 3, at19, nil))
	require.NoError(t, err)
	assert.Equal(t, uint(20), *res.TableID)
}

func TestCreateReservation_ExplicitTableConflict(t *testing.T) {
	repo := twoTableRepo()
	uc := ucReservation.NewCreateReservation(repo, nil)

	tableID := uint(20)
	repo.addReservation(models.Reservation{
		UserID:       2,
		RestaurantID: 1,
		TableID:      &tableID,
		StartTime:    at19.Add(time.Hour), // 20:00–22:00
		PartySize:    2,
		Status:       string(domain.StatusAccepted),
	})

	_, err := uc.Execute(context.Background(), candidate(t, 2, at19, &tableID))
	assert.True(t, httperr.IsBusiness(err, "table_unavailable"))
}

func TestCreateReservation_ExplicitTableCapacityChecked(t *testing.T) {
	repo := twoTableRepo()
	uc := ucReservation.NewCreateReservation(repo, nil)

	// table #1 seats 2, party of 3 must be refused even when chosen
	// explicitly
	smallTable := uint(10)
	_, err := uc.Execute(context.Background(), candidate(t, 3, at19, &smallTable))
	assert.True(t, httperr.IsBusiness(err, "table_unavailable"))
}

func TestCreateReservation_UnknownRestaurantAndTable(t *testing.T) {
	repo := twoTableRepo()
	uc := ucReservation.NewCreateReservation(repo, nil)

	cand := candidate(t, 2, at19, nil)
	cand.RestaurantID = 99
	_, err := uc.Execute(context.Background(), cand)
	assert.True(t, httperr.IsBusiness(err, "restaurant_not_found"))

	ghost := uint(77)
	_, err = uc.Execute(context.Background(), candidate(t, 2, at19, &ghost))
	assert.True(t, httperr.IsBusiness(err, "table_not_found"))
}

func TestCreateReservation_StatusAlwaysStartsPending(t *testing.T) {
	repo := twoTableRepo()
	uc := ucReservation.NewCreateReservation(repo, nil)

	cand, err := domain.NewBuilder().
		User(1).
		Restaurant(1).
		StartTime(at19).
		Status(domain.StatusAccepted).
		Build()
	require.NoError(t, err)

	res, err := uc.Execute(context.Background(), cand)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), res.Status)
}

func TestCreateReservation_FailureWritesNothing(t *testing.T) {
	repo := twoTableRepo()
	uc := ucReservation.NewCreateReservation(repo, nil)

	tableID := uint(20)
	repo.addReservation(models.Reservation{
		UserID:       2,
		RestaurantID: 1,
		TableID:      &tableID,
		StartTime:    at19,
		PartySize:    4,
		Status:       string(domain.StatusPending),
	})

	_, err := uc.Execute(context.Background(), candidate(t, 3, at19, nil))
	require.Error(t, err)

	active, err := repo.ListActiveForRestaurant(context.Background(), 1, at19.Add(-2*time.Hour), at19.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestCreateReservation_ConcurrentRequestsForLastTable(t *testing.T) {
	repo := newFakeRepo()
	repo.addRestaurant(1, "La Parrilla")
	repo.addTable(10, 1, 1, 4)

	uc := ucReservation.NewCreateReservation(repo, nil)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			cand, err := domain.NewBuilder().
				User(uint(i + 1)).
				Restaurant(1).
				StartTime(at19).
				PartySize(2).
				Build()
			if err != nil {
				errs[i] = err
				return
			}

			_, errs[i] = uc.Execute(context.Background(), cand)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t, httperr.IsBusiness(err, "no_table_available"))
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent request may win the table")

	// the non-overlap invariant holds on the stored rows
	tableID := uint(10)
	active, err := repo.ListActiveForTable(context.Background(), tableID, at19.Add(-2*time.Hour), at19.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
