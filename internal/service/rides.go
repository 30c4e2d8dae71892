package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/teetime/campusride/internal/domain/car"
	"github.com/teetime/campusride/internal/domain/ride"
)

const baseRate = 5.0

type RideStore interface {
	Create(ctx context.Context, rd ride.Ride) (ride.Ride, error)
	GetByID(ctx context.Context, id int64) (ride.Ride, error)
	Update(ctx context.Context, rd ride.Ride) error
	ListPending(ctx context.Context) ([]ride.Ride, error)
	ListByPassenger(ctx context.Context, passengerID int64) ([]ride.Ride, error)
	ListByDriver(ctx context.Context, driverID int64) ([]ride.Ride, error)
}

type CarStore interface {
	Create(ctx context.Context, c car.Car) (car.Car, error)
	ListByDriver(ctx context.Context, driverID int64) ([]car.Car, error)
	Delete(ctx context.Context, id int64) error
}

// RideService drives the ride lifecycle:
// PENDING -> CONFIRMED -> COMPLETED, with CANCELLED reachable from PENDING
// through an explicit passenger cancellation only.
type RideService struct {
	rides RideStore
	cars  CarStore

	now func() time.Time
	// distance source in [0,1); geocoding is out of scope, so the distance
	// factor is simulated. Injected so tests can pin the price.
	distance func() float64
}

func NewRideService(rides RideStore, cars CarStore) *RideService {
	return &RideService{
		rides:    rides,
		cars:     cars,
		now:      time.Now,
		distance: rand.Float64,
	}
}

// NewRideServiceWithClock builds a RideService with an explicit clock and
// distance source, for deterministic tests.
func NewRideServiceWithClock(rides RideStore, cars CarStore, now func() time.Time, distance func() float64) *RideService {
	return &RideService{
		rides:    rides,
		cars:     cars,
		now:      now,
		distance: distance,
	}
}

func (s *RideService) CreateRideRequest(ctx context.Context, req ride.CreateRideRequest) (ride.Ride, error) {
	if strings.TrimSpace(req.Origin) == "" {
		return ride.Ride{}, invalid("origin", "origin cannot be empty")
	}

	if strings.TrimSpace(req.Destination) == "" {
		return ride.Ride{}, invalid("destination", "destination cannot be empty")
	}

	if req.SeatsNeeded <= 0 {
		return ride.Ride{}, invalid("seatsNeeded", "seats needed must be greater than 0")
	}

	if !req.Time.After(s.now()) {
		return ride.Ride{}, invalid("time", "time must be in the future")
	}

	price := s.estimatePrice(req.SeatsNeeded)

	return s.rides.Create(ctx, ride.NewFromCreateRequest(req, price))
}

// AcceptRide confirms a pending ride against one of the driver's own cars.
// A car id that exists but belongs to another driver fails the same way as a
// nonexistent one.
func (s *RideService) AcceptRide(ctx context.Context, rideID, driverID, carID int64) (ride.Ride, error) {
	cars, err := s.cars.ListByDriver(ctx, driverID)

	if err != nil {
		return ride.Ride{}, err
	}

	var selected *car.Car

	for i := range cars {
		if cars[i].ID == carID {
			selected = &cars[i]
			break
		}
	}

	if selected == nil {
		return ride.Ride{}, car.ErrNotFound
	}

	rd, err := s.rides.GetByID(ctx, rideID)

	if err != nil {
		return ride.Ride{}, err
	}

	if rd.SeatsNeeded > selected.Seats {
		return ride.Ride{}, &ride.CapacityError{
			CarSeats:    selected.Seats,
			SeatsNeeded: rd.SeatsNeeded,
		}
	}

	if err := rd.Confirm(driverID, carID); err != nil {
		return ride.Ride{}, err
	}

	if err := s.rides.Update(ctx, rd); err != nil {
		return ride.Ride{}, err
	}

	return rd, nil
}

// CompleteRide closes out a CONFIRMED ride. Completing a ride no driver ever
// accepted is rejected.
func (s *RideService) CompleteRide(ctx context.Context, rideID int64) (ride.Ride, error) {
	rd, err := s.rides.GetByID(ctx, rideID)

	if err != nil {
		return ride.Ride{}, err
	}

	if err := rd.Complete(); err != nil {
		return ride.Ride{}, err
	}

	if err := s.rides.Update(ctx, rd); err != nil {
		return ride.Ride{}, err
	}

	return rd, nil
}

// CancelRide withdraws a PENDING ride. Only the requesting passenger may do it.
func (s *RideService) CancelRide(ctx context.Context, rideID, passengerID int64) (ride.Ride, error) {
	rd, err := s.rides.GetByID(ctx, rideID)

	if err != nil {
		return ride.Ride{}, err
	}

	if rd.PassengerID != passengerID {
		return ride.Ride{}, fmt.Errorf("%w: not requested by passenger %d", ride.ErrNotFound, passengerID)
	}

	if err := rd.Cancel(); err != nil {
		return ride.Ride{}, err
	}

	if err := s.rides.Update(ctx, rd); err != nil {
		return ride.Ride{}, err
	}

	return rd, nil
}

func (s *RideService) PendingRides(ctx context.Context) ([]ride.Ride, error) {
	return s.rides.ListPending(ctx)
}

func (s *RideService) RidesByPassenger(ctx context.Context, passengerID int64) ([]ride.Ride, error) {
	return s.rides.ListByPassenger(ctx, passengerID)
}

func (s *RideService) RidesByDriver(ctx context.Context, driverID int64) ([]ride.Ride, error) {
	return s.rides.ListByDriver(ctx, driverID)
}

func (s *RideService) estimatePrice(seats int) float64 {
	distanceFactor := 1.0 + s.distance()*2.0

	return baseRate * distanceFactor * float64(seats)
}
