package car

import (
	"errors"
	"time"
)

// Seat capacity is domain-capped: campus cars, not buses.
const MaxSeats = 8

type Car struct {
	ID        int64     `json:"id"`
	DriverID  int64     `json:"driverId"`
	Plate     string    `json:"plate"`
	Brand     string    `json:"brand"`
	Seats     int       `json:"seats"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("car not found")

type AddCarRequest struct {
	DriverID int64  `json:"-"`
	Plate    string `json:"plate" binding:"required"`
	Brand    string `json:"brand" binding:"required"`
	Seats    int    `json:"seats" binding:"required,min=1,max=8"`
}

// A factory to build a Car from the incoming DTO.
func NewFromAddRequest(req AddCarRequest) Car {
	return Car{
		DriverID:  req.DriverID,
		Plate:     req.Plate,
		Brand:     req.Brand,
		Seats:     req.Seats,
		CreatedAt: time.Now().UTC(),
	}
}
