package ride

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

type Ride struct {
	ID            int64     `json:"id"`
	PassengerID   int64     `json:"passengerId"`
	DriverID      *int64    `json:"driverId,omitempty"`
	CarID         *int64    `json:"carId,omitempty"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Time          time.Time `json:"time"`
	SeatsNeeded   int       `json:"seatsNeeded"`
	Status        Status    `json:"status"`
	PriceEstimate float64   `json:"priceEstimate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("ride not found")

// CapacityError is returned when a car cannot seat a ride's party.
type CapacityError struct {
	CarSeats    int
	SeatsNeeded int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("car capacity (%d) is less than seats needed (%d)", e.CarSeats, e.SeatsNeeded)
}

// StateError is returned when a lifecycle transition starts from the wrong status.
type StateError struct {
	From Status
	To   Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot move ride from %s to %s", e.From, e.To)
}

// Confirm assigns the accepting driver and car and moves the ride to CONFIRMED.
// Driver and car ids always transition together; a ride never carries one
// without the other.
func (r *Ride) Confirm(driverID, carID int64) error {
	if r.Status != StatusPending {
		return &StateError{From: r.Status, To: StatusConfirmed}
	}

	r.DriverID = &driverID
	r.CarID = &carID
	r.Status = StatusConfirmed
	r.UpdatedAt = time.Now().UTC()

	return nil
}

// Complete moves a CONFIRMED ride to COMPLETED.
func (r *Ride) Complete() error {
	if r.Status != StatusConfirmed {
		return &StateError{From: r.Status, To: StatusCompleted}
	}

	r.Status = StatusCompleted
	r.UpdatedAt = time.Now().UTC()

	return nil
}

// Cancel withdraws a ride that no driver has accepted yet.
func (r *Ride) Cancel() error {
	if r.Status != StatusPending {
		return &StateError{From: r.Status, To: StatusCancelled}
	}

	r.Status = StatusCancelled
	r.UpdatedAt = time.Now().UTC()

	return nil
}

type CreateRideRequest struct {
	PassengerID int64     `json:"-"`
	Origin      string    `json:"origin" binding:"required"`
	Destination string    `json:"destination" binding:"required"`
	Time        time.Time `json:"time" binding:"required"`
	SeatsNeeded int       `json:"seatsNeeded" binding:"required,min=1"`
}

// A factory to build a PENDING Ride from the incoming DTO. The price estimate
// is computed by the ride service, not here.
func NewFromCreateRequest(req CreateRideRequest, price float64) Ride {
	now := time.Now().UTC()

	return Ride{
		PassengerID:   req.PassengerID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Time:          req.Time,
		SeatsNeeded:   req.SeatsNeeded,
		Status:        StatusPending,
		PriceEstimate: price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
