package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/teetime/campusride/internal/domain/car"
	"github.com/teetime/campusride/internal/domain/ride"
	"github.com/teetime/campusride/internal/repo/memory"
	"github.com/teetime/campusride/internal/service"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// fixture with a pinned clock and distance source: factor = 1.0 + 0.5*2.0 = 2.0
func newRideService() (*service.RideService, *memory.RidesRepo, *memory.CarsRepo) {
	rides := memory.NewRidesRepo(nil)
	cars := memory.NewCarsRepo(nil)

	svc := service.NewRideServiceWithClock(
		rides, cars,
		func() time.Time { return testNow },
		func() float64 { return 0.5 },
	)

	return svc, rides, cars
}

func rideRequest(seats int) ride.CreateRideRequest {
	return ride.CreateRideRequest{
		PassengerID: 1,
		Origin:      "Campus",
		Destination: "Airport",
		Time:        testNow.Add(3 * time.Hour),
		SeatsNeeded: seats,
	}
}

func ownedCar(t *testing.T, cars *memory.CarsRepo, driverID int64, seats int) car.Car {
	t.Helper()

	c, err := cars.Create(context.Background(), car.NewFromAddRequest(car.AddCarRequest{
		DriverID: driverID,
		Plate:    "M-1234-AB",
		Brand:    "Seat Ibiza",
		Seats:    seats,
	}))

	if err != nil {
		t.Fatalf("create car: %v", err)
	}

	return c
}

func TestCreateRideRequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ride.CreateRideRequest)
	}{
		{"empty origin", func(r *ride.CreateRideRequest) { r.Origin = "  " }},
		{"empty destination", func(r *ride.CreateRideRequest) { r.Destination = "" }},
		{"zero seats", func(r *ride.CreateRideRequest) { r.SeatsNeeded = 0 }},
		{"past time", func(r *ride.CreateRideRequest) { r.Time = testNow.Add(-time.Minute) }},
		{"exactly now", func(r *ride.CreateRideRequest) { r.Time = testNow }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newRideService()

			req := rideRequest(2)
			tc.mutate(&req)

			_, err := svc.CreateRideRequest(context.Background(), req)

			var validationErr *service.ValidationError

			if !errors.As(err, &validationErr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateRideRequestPendingWithPrice(t *testing.T) {
	svc, _, _ := newRideService()
	ctx := context.Background()

	rd, err := svc.CreateRideRequest(ctx, rideRequest(3))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if rd.Status != ride.StatusPending {
		t.Fatalf("status = %s, want %s", rd.Status, ride.StatusPending)
	}

	// base 5.0 * pinned factor 2.0 * 3 seats
	if rd.PriceEstimate != 30.0 {
		t.Fatalf("price = %f, want 30.0", rd.PriceEstimate)
	}

	pending, err := svc.PendingRides(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}

	if len(pending) != 1 || pending[0].ID != rd.ID {
		t.Fatalf("pending = %+v, want the new ride", pending)
	}
}

func TestAcceptRideRejectsForeignOrUnknownCar(t *testing.T) {
	svc, _, cars := newRideService()
	ctx := context.Background()

	rd, err := svc.CreateRideRequest(ctx, rideRequest(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	otherDriversCar := ownedCar(t, cars, 99, 4)

	// a car owned by someone else fails exactly like a nonexistent one
	if _, err := svc.AcceptRide(ctx, rd.ID, 7, otherDriversCar.ID); !errors.Is(err, car.ErrNotFound) {
		t.Fatalf("foreign car: want car.ErrNotFound, got %v", err)
	}

	if _, err := svc.AcceptRide(ctx, rd.ID, 7, 12345); !errors.Is(err, car.ErrNotFound) {
		t.Fatalf("unknown car: want car.ErrNotFound, got %v", err)
	}
}

func TestAcceptRideCapacityCheck(t *testing.T) {
	svc, _, cars := newRideService()
	ctx := context.Background()

	rd, err := svc.CreateRideRequest(ctx, rideRequest(3))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	smallCar := ownedCar(t, cars, 7, 2)

	_, err = svc.AcceptRide(ctx, rd.ID, 7, smallCar.ID)

	var capacityErr *ride.CapacityError

	if !errors.As(err, &capacityErr) {
		t.Fatalf("want CapacityError, got %v", err)
	}

	if capacityErr.CarSeats != 2 || capacityErr.SeatsNeeded != 3 {
		t.Fatalf("capacity error = %+v, want seats 2 and needed 3", capacityErr)
	}

	msg := capacityErr.Error()

	if !strings.Contains(msg, "2") || !strings.Contains(msg, "3") {
		t.Fatalf("message %q must mention both capacities", msg)
	}
}

func TestAcceptRideConfirmsAndLeavesPending(t *testing.T) {
	svc, _, cars := newRideService()
	ctx := context.Background()

	rd, err := svc.CreateRideRequest(ctx, rideRequest(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c := ownedCar(t, cars, 7, 2)

	accepted, err := svc.AcceptRide(ctx, rd.ID, 7, c.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if accepted.Status != ride.StatusConfirmed {
		t.Fatalf("status = %s, want %s", accepted.Status, ride.StatusConfirmed)
	}

	if accepted.DriverID == nil || *accepted.DriverID != 7 {
		t.Fatal("driver id not set on acceptance")
	}

	if accepted.CarID == nil || *accepted.CarID != c.ID {
		t.Fatal("car id not set on acceptance")
	}

	pending, err := svc.PendingRides(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}

	if len(pending) != 0 {
		t.Fatalf("accepted ride still listed as pending: %+v", pending)
	}

	// accepting twice must fail: the ride is no longer PENDING
	if _, err := svc.AcceptRide(ctx, rd.ID, 7, c.ID); err == nil {
		t.Fatal("second acceptance succeeded")
	}
}

func TestCompleteRideRequiresConfirmed(t *testing.T) {
	svc, _, cars := newRideService()
	ctx := context.Background()

	rd, err := svc.CreateRideRequest(ctx, rideRequest(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.CompleteRide(ctx, rd.ID)

	var stateErr *ride.StateError

	if !errors.As(err, &stateErr) {
		t.Fatalf("completing a pending ride: want StateError, got %v", err)
	}

	c := ownedCar(t, cars, 7, 2)

	if _, err := svc.AcceptRide(ctx, rd.ID, 7, c.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	done, err := svc.CompleteRide(ctx, rd.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if done.Status != ride.StatusCompleted {
		t.Fatalf("status = %s, want %s", done.Status, ride.StatusCompleted)
	}

	// terminal state visible through both party queries
	byDriver, err := svc.RidesByDriver(ctx, 7)
	if err != nil {
		t.Fatalf("by driver: %v", err)
	}

	if len(byDriver) != 1 || byDriver[0].Status != ride.StatusCompleted {
		t.Fatalf("driver query = %+v, want completed ride", byDriver)
	}

	byPassenger, err := svc.RidesByPassenger(ctx, 1)
	if err != nil {
		t.Fatalf("by passenger: %v", err)
	}

	if len(byPassenger) != 1 || byPassenger[0].Status != ride.StatusCompleted {
		t.Fatalf("passenger query = %+v, want completed ride", byPassenger)
	}
}

func TestCancelRideOnlyPendingAndOnlyOwner(t *testing.T) {
	svc, _, _ := newRideService()
	ctx := context.Background()

	rd, err := svc.CreateRideRequest(ctx, rideRequest(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.CancelRide(ctx, rd.ID, 999); !errors.Is(err, ride.ErrNotFound) {
		t.Fatalf("foreign passenger: want ErrNotFound, got %v", err)
	}

	cancelled, err := svc.CancelRide(ctx, rd.ID, 1)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if cancelled.Status != ride.StatusCancelled {
		t.Fatalf("status = %s, want %s", cancelled.Status, ride.StatusCancelled)
	}

	var stateErr *ride.StateError

	if _, err := svc.CancelRide(ctx, rd.ID, 1); !errors.As(err, &stateErr) {
		t.Fatalf("second cancel: want StateError, got %v", err)
	}
}

func TestAcceptRideUnknownRide(t *testing.T) {
	svc, _, cars := newRideService()
	ctx := context.Background()

	c := ownedCar(t, cars, 7, 4)

	if _, err := svc.AcceptRide(ctx, 42, 7, c.ID); !errors.Is(err, ride.ErrNotFound) {
		t.Fatalf("want ride.ErrNotFound, got %v", err)
	}
}
