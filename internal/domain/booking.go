package domain

import "time"

type Booking struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user"`
	FlightID     int64     `json:"flight"`
	FlightNumber string    `json:"flight_number"`
	CreatedAt    time.Time `json:"created_at"`
}
