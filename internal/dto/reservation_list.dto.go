package dto

import "time"

type ReservationListDTO struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	PartySize   int       `json:"party_size"`
	Status      string    `json:"status"`
	Restaurant  string    `json:"restaurant"`
	TableNumero *int      `json:"table_numero"`
	UserEmail   string    `json:"user_email,omitempty"`
}
