package reservation

import (
	"context"
	"time"

	"github.com/MesaLibreServices/mesa-scheduler/internal/audit"
	domain "github.com/MesaLibreServices/mesa-scheduler/internal/domain/reservation"
	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// CreateReservation is the only path that writes reservations. It either
// validates the table the candidate picked or searches for the
// lowest-numbered table that seats the party, always applying the exact
// overlap test to every active reservation found near the requested window.
//
// The conflict scan and the insert run inside one transaction holding a row
// lock on the table, so two concurrent requests for the same table cannot
// both observe it free.
type CreateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	cand models.Reservation,
) (*models.Reservation, error) {

	if _, err := uc.repo.GetRestaurantByID(ctx, cand.RestaurantID); err != nil {
		return nil, httperr.ErrBusiness("restaurant_not_found")
	}

	start := cand.StartTime
	end := domain.End(start)
	from, to := domain.SearchWindow(start)

	res := cand
	res.Status = string(domain.InitialStatus())

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Branch A: the caller picked a table
		// --------------------------------------------------
		if cand.TableID != nil {
			table, err := tx.GetTable(ctx, cand.RestaurantID, *cand.TableID)
			if err != nil {
				return httperr.ErrBusiness("table_not_found")
			}

			if table.Capacity < cand.PartySize {
				return httperr.ErrBusiness("table_unavailable")
			}

			if err := tx.LockTable(ctx, table.ID); err != nil {
				return err
			}

			free, err := tableIsFree(ctx, tx, table.ID, from, to, start, end)
			if err != nil {
				return err
			}
			if !free {
				return httperr.ErrBusiness("table_unavailable")
			}

			res.TableID = &table.ID
			return tx.CreateReservation(ctx, &res)
		}

		// --------------------------------------------------
		// Branch B: auto-assign, lowest numero first
		// --------------------------------------------------
		candidates, err := tx.ListTablesByMinCapacity(
			ctx,
			cand.RestaurantID,
			cand.PartySize,
		)
		if err != nil {
			return err
		}

		for i := range candidates {
			table := &candidates[i]

			if err := tx.LockTable(ctx, table.ID); err != nil {
				return err
			}

			free, err := tableIsFree(ctx, tx, table.ID, from, to, start, end)
			if err != nil {
				return err
			}
			if free {
				res.TableID = &table.ID
				return tx.CreateReservation(ctx, &res)
			}
		}

		return httperr.ErrBusiness("no_table_available")
	})

	if err != nil {
		code := httperr.BusinessCode(err)
		if code == "table_unavailable" || code == "no_table_available" || httperr.IsExclusionConflict(err) {
			uc.audit.Dispatch(audit.Event{
				RestaurantID: &cand.RestaurantID,
				UserID:       &cand.UserID,
				Action:       "reservation_conflict",
				Entity:       "reservation",
				Metadata: map[string]any{
					"start":      start,
					"end":        end,
					"party_size": cand.PartySize,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: &res.RestaurantID,
		UserID:       &res.UserID,
		Action:       "reservation_created",
		Entity:       "reservation",
		EntityID:     &res.ID,
	})

	return &res, nil
}

// tableIsFree fetches the active reservations of a table that start near
// the requested window and applies the exact overlap test to each.
func tableIsFree(
	ctx context.Context,
	tx domain.Repository,
	tableID uint,
	from, to time.Time,
	start, end time.Time,
) (bool, error) {
	existing, err := tx.ListActiveForTable(ctx, tableID, from, to)
	if err != nil {
		return false, err
	}

	for _, r := range existing {
		if domain.Overlaps(start, end, r.StartTime, domain.End(r.StartTime)) {
			return false, nil
		}
	}

	return true, nil
}
