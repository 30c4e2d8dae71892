package memory

import (
	"context"
	"sync"

	"github.com/teetime/campusride/internal/domain/car"
	"github.com/teetime/campusride/internal/observability"
)

type CarsRepo struct {
	mu     sync.RWMutex
	items  map[int64]car.Car
	nextID int64
	prom   *observability.Prom
}

func NewCarsRepo(prom *observability.Prom) *CarsRepo {
	return &CarsRepo{
		items:  make(map[int64]car.Car),
		nextID: 1,
		prom:   prom,
	}
}

func (r *CarsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveStore(op, fn)
	}
	return fn()
}

func (r *CarsRepo) Create(ctx context.Context, c car.Car) (car.Car, error) {
	_ = r.observe("cars.create", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		c.ID = r.nextID
		r.nextID++
		r.items[c.ID] = c

		return nil
	})

	return c, nil
}

func (r *CarsRepo) GetByID(ctx context.Context, id int64) (car.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]

	if !ok {
		return car.Car{}, car.ErrNotFound
	}

	return c, nil
}

func (r *CarsRepo) ListByDriver(ctx context.Context, driverID int64) ([]car.Car, error) {
	cars := make([]car.Car, 0)

	_ = r.observe("cars.list_by_driver", func() error {
		r.mu.RLock()
		defer r.mu.RUnlock()

		for _, c := range r.items {
			if c.DriverID == driverID {
				cars = append(cars, c)
			}
		}

		return nil
	})

	sortByID(cars, func(c car.Car) int64 { return c.ID })

	return cars, nil
}

// Delete is idempotent: removing an absent id is a no-op, not an error.
func (r *CarsRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("cars.delete", func() error {
		r.mu.Lock()
		delete(r.items, id)
		r.mu.Unlock()

		return nil
	})
}
