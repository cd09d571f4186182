package reservation

import "time"

// Every reservation occupies its table for exactly two hours starting at
// fecha_hora.
const Window = 2 * time.Hour

// End returns the instant the reservation starting at start releases its
// table.
func End(start time.Time) time.Time {
	return start.Add(Window)
}

// Overlaps is the exact half-open interval test: [aStart, aEnd) intersects
// [bStart, bEnd). Reservations that touch end-to-start do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// SearchWindow bounds the candidate query for a start instant: any stored
// reservation able to overlap [start, start+Window) must itself start inside
// [start-Window, start+Window]. Rows fetched with it still go through
// Overlaps before they count as conflicts.
func SearchWindow(start time.Time) (time.Time, time.Time) {
	return start.Add(-Window), start.Add(Window)
}
