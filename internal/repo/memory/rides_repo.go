package memory

import (
	"context"
	"sync"

	"github.com/teetime/campusride/internal/domain/ride"
	"github.com/teetime/campusride/internal/observability"
)

type RidesRepo struct {
	mu     sync.RWMutex
	items  map[int64]ride.Ride
	nextID int64
	prom   *observability.Prom
}

func NewRidesRepo(prom *observability.Prom) *RidesRepo {
	return &RidesRepo{
		items:  make(map[int64]ride.Ride),
		nextID: 1,
		prom:   prom,
	}
}

func (r *RidesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveStore(op, fn)
	}
	return fn()
}

func (r *RidesRepo) Create(ctx context.Context, rd ride.Ride) (ride.Ride, error) {
	_ = r.observe("rides.create", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		rd.ID = r.nextID
		r.nextID++
		r.items[rd.ID] = rd

		return nil
	})

	return rd, nil
}

func (r *RidesRepo) GetByID(ctx context.Context, id int64) (rd ride.Ride, err error) {
	err = r.observe("rides.get_by_id", func() error {
		r.mu.RLock()
		defer r.mu.RUnlock()

		found, ok := r.items[id]

		if !ok {
			return ride.ErrNotFound
		}

		rd = found
		return nil
	})

	if err != nil {
		return ride.Ride{}, err
	}

	return rd, nil
}

// Update overwrites the stored ride keyed by id. Unknown ids are an error, not
// an upsert.
func (r *RidesRepo) Update(ctx context.Context, rd ride.Ride) error {
	return r.observe("rides.update", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		if _, ok := r.items[rd.ID]; !ok {
			return ride.ErrNotFound
		}

		r.items[rd.ID] = rd

		return nil
	})
}

func (r *RidesRepo) List(ctx context.Context) ([]ride.Ride, error) {
	return r.listWhere("rides.list", func(ride.Ride) bool { return true })
}

func (r *RidesRepo) ListPending(ctx context.Context) ([]ride.Ride, error) {
	return r.listWhere("rides.list_pending", func(rd ride.Ride) bool {
		return rd.Status == ride.StatusPending
	})
}

func (r *RidesRepo) ListByPassenger(ctx context.Context, passengerID int64) ([]ride.Ride, error) {
	return r.listWhere("rides.list_by_passenger", func(rd ride.Ride) bool {
		return rd.PassengerID == passengerID
	})
}

// ListByDriver treats an unassigned driver id as never matching.
func (r *RidesRepo) ListByDriver(ctx context.Context, driverID int64) ([]ride.Ride, error) {
	return r.listWhere("rides.list_by_driver", func(rd ride.Ride) bool {
		return rd.DriverID != nil && *rd.DriverID == driverID
	})
}

func (r *RidesRepo) listWhere(op string, keep func(ride.Ride) bool) ([]ride.Ride, error) {
	rides := make([]ride.Ride, 0)

	_ = r.observe(op, func() error {
		r.mu.RLock()
		defer r.mu.RUnlock()

		for _, rd := range r.items {
			if keep(rd) {
				rides = append(rides, rd)
			}
		}

		return nil
	})

	sortByID(rides, func(rd ride.Ride) int64 { return rd.ID })

	return rides, nil
}
