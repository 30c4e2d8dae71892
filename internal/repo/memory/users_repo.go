package memory

import (
	"context"
	"sync"
	"time"

	"github.com/teetime/campusride/internal/domain/user"
	"github.com/teetime/campusride/internal/observability"
)

// UsersRepo is the in-memory source of truth for user records.
type UsersRepo struct {
	mu     sync.RWMutex
	items  map[int64]user.User
	nextID int64
	prom   *observability.Prom
}

func NewUsersRepo(prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		items:  make(map[int64]user.User),
		nextID: 1,
		prom:   prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveStore(op, fn)
	}
	return fn()
}

func (r *UsersRepo) Create(ctx context.Context, name, email, passwordHash, role string) (u user.User, err error) {
	err = r.observe("users.create", func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		// email is unique across the whole user set (case-sensitive, exact)
		for _, existing := range r.items {
			if existing.Email == email {
				return user.ErrEmailTaken
			}
		}

		now := time.Now().UTC()

		u = user.User{
			ID:           r.nextID,
			Name:         name,
			Email:        email,
			PasswordHash: passwordHash,
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		r.nextID++
		r.items[u.ID] = u

		return nil
	})

	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (u user.User, err error) {
	err = r.observe("users.get_by_email", func() error {
		r.mu.RLock()
		defer r.mu.RUnlock()

		for _, candidate := range r.items {
			if candidate.Email == email {
				u = candidate
				return nil
			}
		}

		return user.ErrNotFound
	})

	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}
