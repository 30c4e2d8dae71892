package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teetime/campusride/internal/domain/car"
	"github.com/teetime/campusride/internal/domain/ride"
	"github.com/teetime/campusride/internal/domain/user"
)

func carFixture(driverID int64) car.Car {
	return car.NewFromAddRequest(car.AddCarRequest{
		DriverID: driverID,
		Plate:    "M-1234-AB",
		Brand:    "Seat Ibiza",
		Seats:    4,
	})
}

func rideFixture(passengerID int64) ride.Ride {
	return ride.NewFromCreateRequest(ride.CreateRideRequest{
		PassengerID: passengerID,
		Origin:      "Campus",
		Destination: "Atocha",
		Time:        time.Now().Add(time.Hour),
		SeatsNeeded: 2,
	}, 12.00)
}

func TestUsersCreateAssignsIncrementingIDs(t *testing.T) {
	repo := NewUsersRepo(nil)
	ctx := context.Background()

	first, err := repo.Create(ctx, "Ana", "ana@ie.edu", "hash-a", user.RolePassenger)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := repo.Create(ctx, "Ben", "ben@ie.edu", "hash-b", user.RoleDriver)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = (%d, %d), want (1, 2)", first.ID, second.ID)
	}
}

func TestUsersDuplicateEmailLeavesFirstUntouched(t *testing.T) {
	repo := NewUsersRepo(nil)
	ctx := context.Background()

	first, err := repo.Create(ctx, "Ana", "ana@ie.edu", "hash-a", user.RolePassenger)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = repo.Create(ctx, "Impostor", "ana@ie.edu", "hash-x", user.RoleDriver)

	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}

	stored, err := repo.GetByEmail(ctx, "ana@ie.edu")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if stored.Name != first.Name || stored.PasswordHash != first.PasswordHash {
		t.Fatal("existing record was modified by the rejected insert")
	}
}

func TestUsersEmailMatchIsCaseSensitive(t *testing.T) {
	repo := NewUsersRepo(nil)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "Ana", "ana@ie.edu", "hash", user.RolePassenger); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.GetByEmail(ctx, "ANA@ie.edu"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("want ErrNotFound for different casing, got %v", err)
	}
}

func TestCarsDeleteIsIdempotent(t *testing.T) {
	repo := NewCarsRepo(nil)
	ctx := context.Background()

	c, err := repo.Create(ctx, carFixture(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	if err := repo.Delete(ctx, 999); err != nil {
		t.Fatalf("delete of unknown id: %v", err)
	}
}

func TestRidesUpdateUnknownIDFails(t *testing.T) {
	repo := NewRidesRepo(nil)

	err := repo.Update(context.Background(), ride.Ride{ID: 42})

	if !errors.Is(err, ride.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRidesListingsFilterByStatusAndParty(t *testing.T) {
	repo := NewRidesRepo(nil)
	ctx := context.Background()

	pending, err := repo.Create(ctx, rideFixture(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed, err := repo.Create(ctx, rideFixture(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := confirmed.Confirm(9, 4); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := repo.Update(ctx, confirmed); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}

	if len(got) != 1 || got[0].ID != pending.ID {
		t.Fatalf("pending listing = %+v, want only ride %d", got, pending.ID)
	}

	byDriver, err := repo.ListByDriver(ctx, 9)
	if err != nil {
		t.Fatalf("list by driver: %v", err)
	}

	if len(byDriver) != 1 || byDriver[0].ID != confirmed.ID {
		t.Fatalf("driver listing = %+v, want only ride %d", byDriver, confirmed.ID)
	}

	// the pending ride has no driver; it must never match a driver query
	none, err := repo.ListByDriver(ctx, 0)
	if err != nil {
		t.Fatalf("list by driver: %v", err)
	}

	if len(none) != 0 {
		t.Fatalf("unassigned rides matched driver 0: %+v", none)
	}
}
