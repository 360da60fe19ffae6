package domain

import "time"

// Flight is a space flight offering. AvailableSeats is decremented only by seat reservation.
type Flight struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	Destination    string    `json:"destination"`
	LaunchDate     time.Time `json:"launch_date"`
	AvailableSeats int       `json:"seats_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type FlightInput struct {
	FlightNumber   string
	Destination    string
	LaunchDate     time.Time
	AvailableSeats int
}

// FlightPatch carries optional fields for partial updates. Seats are not patchable.
type FlightPatch struct {
	FlightNumber *string
	Destination  *string
	LaunchDate   *time.Time
}

func (f *Flight) Apply(p FlightPatch) {
	if p.FlightNumber != nil {
		f.FlightNumber = *p.FlightNumber
	}
	if p.Destination != nil {
		f.Destination = *p.Destination
	}
	if p.LaunchDate != nil {
		f.LaunchDate = *p.LaunchDate
	}
}
