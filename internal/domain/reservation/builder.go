package reservation

import (
	"time"

	"github.com/MesaLibreServices/mesa-scheduler/internal/httperr"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

// ===============================
// Builder
// ===============================

// Builder assembles a candidate reservation step by step. It does no
// business validation beyond presence of the mandatory fields; scheduling
// rules belong to the allocator. Build returns a value copy, so a builder
// can be reused (or reset) without touching candidates it already produced.
//
// A Builder is not safe for concurrent use; give each request its own.
type Builder struct {
	userID       uint
	restaurantID uint
	startTime    time.Time
	partySize    int
	tableID      *uint
	status       Status
}

func NewBuilder() *Builder {
	b := &Builder{}
	return b.Reset()
}

// Reset returns every field to its initial state: party size 1, status
// PENDING, no table.
func (b *Builder) Reset() *Builder {
	b.userID = 0
	b.restaurantID = 0
	b.startTime = time.Time{}
	b.partySize = 1
	b.tableID = nil
	b.status = InitialStatus()
	return b
}

func (b *Builder) User(id uint) *Builder {
	b.userID = id
	return b
}

func (b *Builder) Restaurant(id uint) *Builder {
	b.restaurantID = id
	return b
}

func (b *Builder) StartTime(t time.Time) *Builder {
	b.startTime = t
	return b
}

func (b *Builder) PartySize(n int) *Builder {
	b.partySize = n
	return b
}

func (b *Builder) Table(id uint) *Builder {
	b.tableID = &id
	return b
}

// Status sets the initial status. Unknown values are ignored and the field
// keeps its previous value. The original system behaved this way and callers
// rely on it; tightening it to an error is tracked as an open decision in
// DESIGN.md.
func (b *Builder) Status(s Status) *Builder {
	if IsValidStatus(s) {
		b.status = s
	}
	return b
}

// Build validates presence of user, restaurant and start time and returns
// the candidate as a detached value. Mutating the builder afterwards does
// not affect the returned reservation.
func (b *Builder) Build() (models.Reservation, error) {
	if b.userID == 0 || b.restaurantID == 0 || b.startTime.IsZero() {
		return models.Reservation{}, httperr.ErrBusiness("missing_required_field")
	}

	var tableID *uint
	if b.tableID != nil {
		id := *b.tableID
		tableID = &id
	}

	return models.Reservation{
		UserID:       b.userID,
		RestaurantID: b.restaurantID,
		TableID:      tableID,
		StartTime:    b.startTime,
		PartySize:    b.partySize,
		Status:       string(b.status),
	}, nil
}
