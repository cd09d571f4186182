package reservation

import (
	"context"
	"time"

	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

// ListAvailableTables computes which tables of a restaurant are free for the
// two-hour window starting at the given instant. Read-only: a table returned
// here can still be taken by a concurrent request, the allocator re-checks
// under lock.
type ListAvailableTables struct {
	repo domain.Repository
}

func NewListAvailableTables(repo domain.Repository) *ListAvailableTables {
	return &ListAvailableTables{repo: repo}
}

func (uc *ListAvailableTables) Execute(
	ctx context.Context,
	restaurantID uint,
	start time.Time,
) ([]models.Table, error) {

	if _, err := uc.repo.GetRestaurantByID(ctx, restaurantID); err != nil {
		return nil, httperr.ErrBusiness("restaurant_not_found")
	}

	tables, err := uc.repo.ListTables(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	end := domain.End(start)
	from, to := domain.SearchWindow(start)

	active, err := uc.repo.ListActiveForRestaurant(ctx, restaurantID, from, to)
	if err != nil {
		return nil, err
	}

	busy := make(map[uint]bool)
	for _, r := range active {
		if r.TableID == nil {
			continue
		}
		if domain.Overlaps(start, end, r.StartTime, domain.End(r.StartTime)) {
			busy[*r.TableID] = true
		}
	}

	available := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if !busy[t.ID] {
			available = append(available, t)
		}
	}

	return available, nil
}
