package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/teetime/campusride/internal/domain/car"
)

// CarService owns the car management rules for drivers.
type CarService struct {
	cars CarStore
}

func NewCarService(cars CarStore) *CarService {
	return &CarService{cars: cars}
}

func (s *CarService) AddCar(ctx context.Context, req car.AddCarRequest) (car.Car, error) {
	if strings.TrimSpace(req.Plate) == "" {
		return car.Car{}, invalid("plate", "plate cannot be empty")
	}

	if strings.TrimSpace(req.Brand) == "" {
		return car.Car{}, invalid("brand", "brand cannot be empty")
	}

	if req.Seats <= 0 || req.Seats > car.MaxSeats {
		return car.Car{}, invalid("seats", fmt.Sprintf("seats must be between 1 and %d", car.MaxSeats))
	}

	return s.cars.Create(ctx, car.NewFromAddRequest(req))
}

func (s *CarService) CarsByDriver(ctx context.Context, driverID int64) ([]car.Car, error) {
	return s.cars.ListByDriver(ctx, driverID)
}

// DeleteCar is unconditional and idempotent. A CONFIRMED ride keeps its car id
// after the car is gone; rides never re-resolve cars by id.
func (s *CarService) DeleteCar(ctx context.Context, carID int64) error {
	return s.cars.Delete(ctx, carID)
}
